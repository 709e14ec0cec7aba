package batch

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/mflix/internal/domain"
)

// Repository defines the storage contract for batch movie operations.
type Repository interface {
	InsertMany(ctx context.Context, ms []domain.Movie) ([]primitive.ObjectID, error)
	UpdateMany(ctx context.Context, ids []primitive.ObjectID, u *domain.MovieUpdate) (matched, modified int64, err error)
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}
