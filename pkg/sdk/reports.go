package mflix

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ReportService provides the aggregation reports. Every call is bounded by
// the client's aggregation timeout; a deadline hit surfaces ErrTimeout.
type ReportService struct {
	client  *Client
	timeout time.Duration
}

// ByComments returns movies ranked by recent comment activity.
// movieID restricts the report to one movie when non-empty. limit caps the
// recent comments per movie; 0 uses the server default.
func (s *ReportService) ByComments(ctx context.Context, movieID string, limit int) ([]MovieComments, error) {
	q := url.Values{}
	if movieID != "" {
		q.Set("movie_id", movieID)
	}
	if limit != 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var rows []MovieComments
	err := s.bounded(ctx, func(ctx context.Context) error {
		_, err := s.client.do(ctx, http.MethodGet, "/api/movies/aggregations/reportingByComments", q, nil, &rows)
		return err
	})
	return rows, err
}

// ByYear returns per-year catalog statistics, newest year first.
func (s *ReportService) ByYear(ctx context.Context) ([]YearStats, error) {
	var rows []YearStats
	err := s.bounded(ctx, func(ctx context.Context) error {
		_, err := s.client.do(ctx, http.MethodGet, "/api/movies/aggregations/reportingByYear", nil, nil, &rows)
		return err
	})
	return rows, err
}

// ByDirectors returns directors ranked by movie count. limit 0 uses the
// server default.
func (s *ReportService) ByDirectors(ctx context.Context, limit int) ([]DirectorStats, error) {
	q := url.Values{}
	if limit != 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var rows []DirectorStats
	err := s.bounded(ctx, func(ctx context.Context) error {
		_, err := s.client.do(ctx, http.MethodGet, "/api/movies/aggregations/reportingByDirectors", q, nil, &rows)
		return err
	})
	return rows, err
}

// bounded runs fn under the aggregation deadline and maps a deadline hit
// to ErrTimeout.
func (s *ReportService) bounded(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := fn(ctx)
	if err != nil && !errors.Is(err, ErrTimeout) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
