// Package batch implements multi-movie write operations with an
// all-or-nothing id policy: one malformed id fails the whole request
// before anything reaches the store.
package batch

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/mflix/internal/domain"
)

// MaxBatchSize is the maximum number of items per batch request.
const MaxBatchSize = 100

// Service handles batch movie operations.
type Service struct {
	repo         Repository
	maxBatchSize int
}

// New creates a batch service.
func New(repo Repository) *Service {
	return &Service{repo: repo, maxBatchSize: MaxBatchSize}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// CreateMany validates and stores a batch of movies in a single insert.
// The returned ids are in input order.
func (s *Service) CreateMany(ctx context.Context, ms []domain.Movie) ([]string, error) {
	if len(ms) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if len(ms) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: batch size %d exceeds %d", domain.ErrValidation, len(ms), s.maxBatchSize)
	}
	for i := range ms {
		if err := ms[i].Validate(); err != nil {
			return nil, fmt.Errorf("movie [%d]: %w", i, err)
		}
	}

	oids, err := s.repo.InsertMany(ctx, ms)
	if err != nil {
		return nil, fmt.Errorf("create movies: %w", err)
	}

	ids := make([]string, len(oids))
	for i, oid := range oids {
		ids[i] = oid.Hex()
	}
	return ids, nil
}

// UpdateMany applies one partial update to every movie in the id list.
// The returned counts come from the store, not from the input length:
// ids that match no document simply do not count.
func (s *Service) UpdateMany(ctx context.Context, ids []string, u *domain.MovieUpdate) (matched, modified int64, err error) {
	oids, err := s.parseBatch(ids)
	if err != nil {
		return 0, 0, err
	}
	if u.IsEmpty() {
		return 0, 0, fmt.Errorf("%w: no updatable fields provided", domain.ErrValidation)
	}
	if err := u.Validate(); err != nil {
		return 0, 0, err
	}

	matched, modified, err = s.repo.UpdateMany(ctx, oids, u)
	if err != nil {
		return 0, 0, fmt.Errorf("update movies: %w", err)
	}
	return matched, modified, nil
}

// DeleteMany removes every movie in the id list and reports how many
// documents the store actually deleted.
func (s *Service) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids, err := s.parseBatch(ids)
	if err != nil {
		return 0, err
	}

	deleted, err := s.repo.DeleteMany(ctx, oids)
	if err != nil {
		return 0, fmt.Errorf("delete movies: %w", err)
	}
	return deleted, nil
}

func (s *Service) parseBatch(ids []string) ([]primitive.ObjectID, error) {
	if len(ids) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if len(ids) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: batch size %d exceeds %d", domain.ErrValidation, len(ids), s.maxBatchSize)
	}
	return domain.ParseIDs(ids)
}
