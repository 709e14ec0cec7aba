// Package reports is the MongoDB repository for catalog aggregation
// reports.
package reports

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kailas-cloud/mflix/internal/domain"
)

// Repo runs report pipelines over the movies collection. The comments
// report joins against the comments collection via $lookup, so only the
// movies handle is needed.
type Repo struct {
	coll *mongo.Collection
}

// New creates a reports repository.
func New(coll *mongo.Collection) *Repo {
	return &Repo{coll: coll}
}

// ByComments returns movies joined with their most recent comments.
func (r *Repo) ByComments(ctx context.Context, movieID *primitive.ObjectID, limit int) ([]domain.MovieComments, error) {
	cur, err := r.coll.Aggregate(ctx, BuildCommentsPipeline(movieID, limit))
	if err != nil {
		return nil, fmt.Errorf("comments report: %w", err)
	}
	defer cur.Close(ctx)

	var rows []domain.MovieComments
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode comments report: %w", err)
	}
	return rows, nil
}

// ByYear returns per-year movie counts and rating statistics.
func (r *Repo) ByYear(ctx context.Context) ([]domain.YearStats, error) {
	cur, err := r.coll.Aggregate(ctx, BuildYearlyPipeline())
	if err != nil {
		return nil, fmt.Errorf("yearly report: %w", err)
	}
	defer cur.Close(ctx)

	var rows []domain.YearStats
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode yearly report: %w", err)
	}
	return rows, nil
}

// ByDirectors returns the top directors ranked by movie count.
func (r *Repo) ByDirectors(ctx context.Context, limit int) ([]domain.DirectorStats, error) {
	cur, err := r.coll.Aggregate(ctx, BuildDirectorsPipeline(limit))
	if err != nil {
		return nil, fmt.Errorf("directors report: %w", err)
	}
	defer cur.Close(ctx)

	var rows []domain.DirectorStats
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode directors report: %w", err)
	}
	return rows, nil
}
