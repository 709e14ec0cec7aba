// Package search implements full-text and semantic movie search.
package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/mflix/internal/domain"
	domsearch "github.com/kailas-cloud/mflix/internal/domain/search"
)

// Service handles search operations. A nil embedder disables vector
// search while leaving text search available.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a search service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Text runs a compound full-text search and returns one page of movies
// plus the total match count.
func (s *Service) Text(ctx context.Context, req *domsearch.Request) ([]domain.Movie, int64, error) {
	movies, total, err := s.repo.Text(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("text search: %w", err)
	}
	return movies, total, nil
}

// Vector embeds the query and returns up to the requested number of
// semantically similar movies, most similar first.
func (s *Service) Vector(ctx context.Context, req *domsearch.VectorRequest) ([]domain.ScoredMovie, error) {
	if s.embed == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	result, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.repo.Vector(ctx, result.Embedding, req.Limit())
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return hits, nil
}
