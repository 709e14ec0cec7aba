// Package search is the MongoDB repository for Atlas text and vector
// search aggregations.
package search

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kailas-cloud/mflix/internal/domain"
	"github.com/kailas-cloud/mflix/internal/domain/search"
)

// Repo runs search pipelines over the movies and embedded_movies
// collections.
type Repo struct {
	movies   *mongo.Collection
	embedded *mongo.Collection
}

// New creates a search repository.
func New(movies, embedded *mongo.Collection) *Repo {
	return &Repo{movies: movies, embedded: embedded}
}

// facetResult is the shape produced by the $facet stage of the text
// search pipeline.
type facetResult struct {
	TotalCount []struct {
		Count int64 `bson:"count"`
	} `bson:"totalCount"`
	Results []domain.Movie `bson:"results"`
}

// Text runs a compound $search and returns one page of movies together
// with the total match count.
func (r *Repo) Text(ctx context.Context, req *search.Request) ([]domain.Movie, int64, error) {
	cur, err := r.movies.Aggregate(ctx, BuildTextPipeline(req))
	if err != nil {
		return nil, 0, fmt.Errorf("text search: %w", err)
	}
	defer cur.Close(ctx)

	var facets []facetResult
	if err := cur.All(ctx, &facets); err != nil {
		return nil, 0, fmt.Errorf("decode text search: %w", err)
	}
	if len(facets) == 0 {
		return nil, 0, nil
	}

	var total int64
	if len(facets[0].TotalCount) > 0 {
		total = facets[0].TotalCount[0].Count
	}
	return facets[0].Results, total, nil
}

// Vector runs a $vectorSearch with the given query embedding and returns
// up to limit scored movies in relevance order.
func (r *Repo) Vector(ctx context.Context, queryVector []float32, limit int) ([]domain.ScoredMovie, error) {
	cur, err := r.embedded.Aggregate(ctx, BuildVectorPipeline(queryVector, limit))
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer cur.Close(ctx)

	var hits []domain.ScoredMovie
	if err := cur.All(ctx, &hits); err != nil {
		return nil, fmt.Errorf("decode vector search: %w", err)
	}
	return hits, nil
}
