package search

import (
	"context"

	"github.com/kailas-cloud/mflix/internal/domain"
	domsearch "github.com/kailas-cloud/mflix/internal/domain/search"
)

// Repository runs search aggregations against the store.
type Repository interface {
	Text(ctx context.Context, req *domsearch.Request) ([]domain.Movie, int64, error)
	Vector(ctx context.Context, queryVector []float32, limit int) ([]domain.ScoredMovie, error)
}

// Embedder vectorizes the query text for semantic search.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
