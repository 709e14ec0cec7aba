// Package reports implements catalog aggregation reports.
package reports

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/mflix/internal/domain"
)

// Per-report limit bounds.
const (
	DefaultCommentsLimit = 10
	MaxCommentsLimit     = 50

	DefaultDirectorsLimit = 20
	MaxDirectorsLimit     = 100
)

// Service handles aggregation reports.
type Service struct {
	repo Repository
}

// New creates a reports service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// ByComments returns movies with their most recent comments. movieID, if
// non-empty, narrows the report to one movie; limit bounds the number of
// comments kept per movie.
func (s *Service) ByComments(ctx context.Context, movieID string, limit int) ([]domain.MovieComments, error) {
	var oid *primitive.ObjectID
	if movieID != "" {
		parsed, err := domain.ParseID(movieID)
		if err != nil {
			return nil, err
		}
		oid = &parsed
	}

	limit = clamp(limit, DefaultCommentsLimit, MaxCommentsLimit)

	rows, err := s.repo.ByComments(ctx, oid, limit)
	if err != nil {
		return nil, fmt.Errorf("comments report: %w", err)
	}
	return rows, nil
}

// ByYear returns per-year movie counts and rating statistics, newest
// years first.
func (s *Service) ByYear(ctx context.Context) ([]domain.YearStats, error) {
	rows, err := s.repo.ByYear(ctx)
	if err != nil {
		return nil, fmt.Errorf("yearly report: %w", err)
	}
	return rows, nil
}

// ByDirectors returns the top directors ranked by movie count.
func (s *Service) ByDirectors(ctx context.Context, limit int) ([]domain.DirectorStats, error) {
	limit = clamp(limit, DefaultDirectorsLimit, MaxDirectorsLimit)

	rows, err := s.repo.ByDirectors(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("directors report: %w", err)
	}
	return rows, nil
}

func clamp(limit, def, ceiling int) int {
	if limit <= 0 {
		return def
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}
