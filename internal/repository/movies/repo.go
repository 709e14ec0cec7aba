// Package movies is the MongoDB repository for the movies collection.
package movies

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kailas-cloud/mflix/internal/domain"
	"github.com/kailas-cloud/mflix/internal/domain/filter"
	"github.com/kailas-cloud/mflix/internal/domain/page"
)

// Repo implements usecase/movies.Repository and usecase/batch.Repository.
type Repo struct {
	coll *mongo.Collection
}

// New creates a movie repository over the movies collection.
func New(coll *mongo.Collection) *Repo {
	return &Repo{coll: coll}
}

// List runs a filtered, sorted find with over-fetch pagination. Up to
// FetchLimit documents come back; the caller trims the extra one.
func (r *Repo) List(ctx context.Context, spec *filter.Spec, cursor page.Cursor) ([]domain.Movie, error) {
	opts := options.Find().
		SetSkip(int64(cursor.Skip())).
		SetLimit(int64(cursor.FetchLimit()))
	if sortDoc := BuildSort(spec); sortDoc != nil {
		opts.SetSort(sortDoc)
	}

	cur, err := r.coll.Find(ctx, BuildFilter(spec), opts)
	if err != nil {
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer cur.Close(ctx)

	var movies []domain.Movie
	if err := cur.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	return movies, nil
}

// Get returns a movie by id.
func (r *Repo) Get(ctx context.Context, id primitive.ObjectID) (domain.Movie, error) {
	var m domain.Movie
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Movie{}, domain.ErrNotFound
		}
		return domain.Movie{}, fmt.Errorf("find movie %s: %w", id.Hex(), err)
	}
	return m, nil
}

// Insert creates one movie and returns its generated id.
func (r *Repo) Insert(ctx context.Context, m *domain.Movie) (primitive.ObjectID, error) {
	m.ID = primitive.NilObjectID
	res, err := r.coll.InsertOne(ctx, m)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert movie: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid, nil
}

// InsertMany creates a batch of movies in one call and returns the
// generated ids in input order.
func (r *Repo) InsertMany(ctx context.Context, ms []domain.Movie) ([]primitive.ObjectID, error) {
	docs := make([]any, len(ms))
	for i := range ms {
		ms[i].ID = primitive.NilObjectID
		docs[i] = &ms[i]
	}

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert movies: %w", err)
	}

	oids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		oid, ok := id.(primitive.ObjectID)
		if !ok {
			return nil, fmt.Errorf("unexpected inserted id type %T", id)
		}
		oids = append(oids, oid)
	}
	return oids, nil
}

// UpdateOne applies the update's present fields to one movie via $set.
// Returns the matched count (0 or 1) and the modified count.
func (r *Repo) UpdateOne(ctx context.Context, id primitive.ObjectID, u *domain.MovieUpdate) (int64, int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateDoc(u)})
	if err != nil {
		return 0, 0, fmt.Errorf("update movie %s: %w", id.Hex(), err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// UpdateMany applies the update's present fields to all movies whose id
// is in the list. Counts reflect the store's actual effect.
func (r *Repo) UpdateMany(ctx context.Context, ids []primitive.ObjectID, u *domain.MovieUpdate) (int64, int64, error) {
	res, err := r.coll.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, bson.M{"$set": updateDoc(u)})
	if err != nil {
		return 0, 0, fmt.Errorf("update movies: %w", err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// DeleteOne removes one movie. Returns the deleted count (0 or 1).
func (r *Repo) DeleteOne(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete movie %s: %w", id.Hex(), err)
	}
	return res.DeletedCount, nil
}

// DeleteMany removes all movies whose id is in the list.
func (r *Repo) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("delete movies: %w", err)
	}
	return res.DeletedCount, nil
}

// FindOneAndDelete removes a movie and returns it in one atomic operation.
func (r *Repo) FindOneAndDelete(ctx context.Context, id primitive.ObjectID) (domain.Movie, error) {
	var m domain.Movie
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Movie{}, domain.ErrNotFound
		}
		return domain.Movie{}, fmt.Errorf("find and delete movie %s: %w", id.Hex(), err)
	}
	return m, nil
}

// DistinctGenres returns the unique values of the genres array field,
// blanks dropped, sorted alphabetically.
func (r *Repo) DistinctGenres(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "genres", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct genres: %w", err)
	}

	genres := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			genres = append(genres, s)
		}
	}
	sort.Strings(genres)
	return genres, nil
}
