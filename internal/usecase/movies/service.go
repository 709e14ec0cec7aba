// Package movies implements catalog CRUD over the movie repository.
package movies

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/mflix/internal/domain"
	"github.com/kailas-cloud/mflix/internal/domain/filter"
	"github.com/kailas-cloud/mflix/internal/domain/page"
)

// Service handles single-movie operations.
type Service struct {
	repo Repository
}

// New creates a movie service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of movies matching the filter, plus pagination
// metadata derived from the over-fetched row.
func (s *Service) List(ctx context.Context, params filter.Params, limit, skip int) ([]domain.Movie, page.Info, error) {
	spec, err := filter.New(params)
	if err != nil {
		return nil, page.Info{}, err
	}
	cursor, err := page.NewCursor(limit, skip)
	if err != nil {
		return nil, page.Info{}, err
	}

	found, err := s.repo.List(ctx, &spec, cursor)
	if err != nil {
		return nil, page.Info{}, fmt.Errorf("list movies: %w", err)
	}

	items, info := page.Trim(found, cursor)
	return items, info, nil
}

// Get returns a movie by its hex id.
func (s *Service) Get(ctx context.Context, id string) (domain.Movie, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return domain.Movie{}, err
	}
	m, err := s.repo.Get(ctx, oid)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("get movie: %w", err)
	}
	return m, nil
}

// Create validates and stores a new movie, returning it with the
// generated id.
func (s *Service) Create(ctx context.Context, m *domain.Movie) (domain.Movie, error) {
	if err := m.Validate(); err != nil {
		return domain.Movie{}, err
	}
	oid, err := s.repo.Insert(ctx, m)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("create movie: %w", err)
	}
	m.ID = oid
	return *m, nil
}

// Update applies a partial update to one movie. An update that matches
// no document reports ErrNotFound; matching without modifying is fine
// (the client sent values the document already had).
func (s *Service) Update(ctx context.Context, id string, u *domain.MovieUpdate) (matched, modified int64, err error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return 0, 0, err
	}
	if u.IsEmpty() {
		return 0, 0, fmt.Errorf("%w: no updatable fields provided", domain.ErrValidation)
	}
	if err := u.Validate(); err != nil {
		return 0, 0, err
	}

	matched, modified, err = s.repo.UpdateOne(ctx, oid, u)
	if err != nil {
		return 0, 0, fmt.Errorf("update movie: %w", err)
	}
	if matched == 0 {
		return 0, 0, domain.ErrNotFound
	}
	return matched, modified, nil
}

// Delete removes one movie by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := domain.ParseID(id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.DeleteOne(ctx, oid)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if deleted == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindAndDelete atomically removes a movie and returns the deleted
// document.
func (s *Service) FindAndDelete(ctx context.Context, id string) (domain.Movie, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return domain.Movie{}, err
	}
	m, err := s.repo.FindOneAndDelete(ctx, oid)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("find and delete movie: %w", err)
	}
	return m, nil
}

// Genres returns the distinct genre values in the catalog.
func (s *Service) Genres(ctx context.Context) ([]string, error) {
	genres, err := s.repo.DistinctGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return genres, nil
}
