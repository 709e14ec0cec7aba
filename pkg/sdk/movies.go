package mflix

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// MovieService provides catalog CRUD operations.
type MovieService struct {
	client *Client
}

// ListOptions are the catalog listing filters. Zero values are omitted.
type ListOptions struct {
	Query     string
	Title     string
	Genre     string
	Year      int
	MinRating float64
	MaxRating float64
	SortBy    string
	SortOrder string
	Limit     int
	Skip      int
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	setStr := func(name, v string) {
		if v != "" {
			q.Set(name, v)
		}
	}
	setStr("q", o.Query)
	setStr("title", o.Title)
	setStr("genre", o.Genre)
	setStr("sortBy", o.SortBy)
	setStr("sortOrder", o.SortOrder)
	if o.Year != 0 {
		q.Set("year", strconv.Itoa(o.Year))
	}
	if o.MinRating != 0 {
		q.Set("minRating", strconv.FormatFloat(o.MinRating, 'f', -1, 64))
	}
	if o.MaxRating != 0 {
		q.Set("maxRating", strconv.FormatFloat(o.MaxRating, 'f', -1, 64))
	}
	if o.Limit != 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Skip != 0 {
		q.Set("skip", strconv.Itoa(o.Skip))
	}
	return q
}

// List returns a page of movies matching the filters.
func (s *MovieService) List(ctx context.Context, opts ListOptions) (Page[Movie], error) {
	var movies []Movie
	info, err := s.client.do(ctx, http.MethodGet, "/api/movies/", opts.values(), nil, &movies)
	if err != nil {
		return Page[Movie]{}, err
	}

	page := Page[Movie]{Items: movies}
	if info != nil {
		page.Info = *info
	}
	return page, nil
}

// Get fetches a single movie by id.
func (s *MovieService) Get(ctx context.Context, id string) (Movie, error) {
	var movie Movie
	_, err := s.client.do(ctx, http.MethodGet, "/api/movies/"+url.PathEscape(id), nil, nil, &movie)
	return movie, err
}

// Create inserts a movie and returns it with its assigned id.
func (s *MovieService) Create(ctx context.Context, movie Movie) (Movie, error) {
	var created Movie
	_, err := s.client.do(ctx, http.MethodPost, "/api/movies/", nil, movie, &created)
	return created, err
}

// CreateBatch inserts several movies in a single store write.
func (s *MovieService) CreateBatch(ctx context.Context, movies []Movie) (BatchCreateResult, error) {
	var result BatchCreateResult
	_, err := s.client.do(ctx, http.MethodPost, "/api/movies/batch", nil, movies, &result)
	return result, err
}

// Update applies a partial update and returns the updated movie.
func (s *MovieService) Update(ctx context.Context, id string, update MovieUpdate) (Movie, error) {
	var movie Movie
	_, err := s.client.do(ctx, http.MethodPatch, "/api/movies/"+url.PathEscape(id), nil, update, &movie)
	return movie, err
}

// batchFilter is the id-list filter the batch endpoints expect:
// {"filter": {"_id": {"$in": [...]}}}.
type batchFilter struct {
	ID struct {
		In []string `json:"$in"`
	} `json:"_id"`
}

func newBatchFilter(ids []string) *batchFilter {
	f := &batchFilter{}
	f.ID.In = ids
	return f
}

type batchUpdateRequest struct {
	Filter *batchFilter `json:"filter"`
	Update *MovieUpdate `json:"update"`
}

// UpdateBatch applies one partial update to every listed movie.
func (s *MovieService) UpdateBatch(ctx context.Context, ids []string, update MovieUpdate) (BatchUpdateResult, error) {
	var result BatchUpdateResult
	body := batchUpdateRequest{Filter: newBatchFilter(ids), Update: &update}
	_, err := s.client.do(ctx, http.MethodPatch, "/api/movies/", nil, body, &result)
	return result, err
}

// Delete removes a movie by id.
func (s *MovieService) Delete(ctx context.Context, id string) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/api/movies/"+url.PathEscape(id), nil, nil, nil)
	return err
}

type batchDeleteRequest struct {
	Filter *batchFilter `json:"filter"`
}

// DeleteBatch removes every listed movie.
func (s *MovieService) DeleteBatch(ctx context.Context, ids []string) (BatchDeleteResult, error) {
	var result BatchDeleteResult
	body := batchDeleteRequest{Filter: newBatchFilter(ids)}
	_, err := s.client.do(ctx, http.MethodDelete, "/api/movies/", nil, body, &result)
	return result, err
}

// FindAndDelete atomically removes a movie and returns its last state.
func (s *MovieService) FindAndDelete(ctx context.Context, id string) (Movie, error) {
	var movie Movie
	_, err := s.client.do(ctx, http.MethodDelete, "/api/movies/"+url.PathEscape(id)+"/find-and-delete", nil, nil, &movie)
	return movie, err
}

// Genres returns the distinct genre values in the catalog.
func (s *MovieService) Genres(ctx context.Context) ([]string, error) {
	var genres []string
	_, err := s.client.do(ctx, http.MethodGet, "/api/movies/genres", nil, nil, &genres)
	return genres, err
}
