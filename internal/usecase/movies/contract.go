package movies

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/mflix/internal/domain"
	"github.com/kailas-cloud/mflix/internal/domain/filter"
	"github.com/kailas-cloud/mflix/internal/domain/page"
)

// Repository defines the storage contract for single-movie operations.
type Repository interface {
	List(ctx context.Context, spec *filter.Spec, cursor page.Cursor) ([]domain.Movie, error)
	Get(ctx context.Context, id primitive.ObjectID) (domain.Movie, error)
	Insert(ctx context.Context, m *domain.Movie) (primitive.ObjectID, error)
	UpdateOne(ctx context.Context, id primitive.ObjectID, u *domain.MovieUpdate) (matched, modified int64, err error)
	DeleteOne(ctx context.Context, id primitive.ObjectID) (int64, error)
	FindOneAndDelete(ctx context.Context, id primitive.ObjectID) (domain.Movie, error)
	DistinctGenres(ctx context.Context) ([]string, error)
}
