package reports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/mflix/internal/domain"
)

// Repository runs report aggregations against the store.
type Repository interface {
	ByComments(ctx context.Context, movieID *primitive.ObjectID, limit int) ([]domain.MovieComments, error)
	ByYear(ctx context.Context) ([]domain.YearStats, error)
	ByDirectors(ctx context.Context, limit int) ([]domain.DirectorStats, error)
}
