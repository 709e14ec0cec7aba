package chi

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// listParams are the catalog listing query parameters.
type listParams struct {
	Q         *string
	Title     *string
	Genre     *string
	Year      *int
	MinRating *float64
	MaxRating *float64
	Limit     *int
	Skip      *int
	SortBy    *string
	SortOrder *string
}

func bindListParams(q url.Values) (listParams, error) {
	var p listParams
	for _, b := range []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"title", &p.Title},
		{"genre", &p.Genre},
		{"year", &p.Year},
		{"minRating", &p.MinRating},
		{"maxRating", &p.MaxRating},
		{"limit", &p.Limit},
		{"skip", &p.Skip},
		{"sortBy", &p.SortBy},
		{"sortOrder", &p.SortOrder},
	} {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return listParams{}, fmt.Errorf("parameter %q: %w", b.name, err)
		}
	}
	return p, nil
}

// searchParams are the full-text search query parameters.
type searchParams struct {
	Plot           *string
	Fullplot       *string
	Directors      *string
	Writers        *string
	Cast           *string
	Limit          *int
	Skip           *int
	SearchOperator *string
}

func bindSearchParams(q url.Values) (searchParams, error) {
	var p searchParams
	for _, b := range []struct {
		name string
		dest any
	}{
		{"plot", &p.Plot},
		{"fullplot", &p.Fullplot},
		{"directors", &p.Directors},
		{"writers", &p.Writers},
		{"cast", &p.Cast},
		{"limit", &p.Limit},
		{"skip", &p.Skip},
		{"searchOperator", &p.SearchOperator},
	} {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return searchParams{}, fmt.Errorf("parameter %q: %w", b.name, err)
		}
	}
	return p, nil
}

// vectorSearchParams are the semantic search query parameters.
type vectorSearchParams struct {
	Q     string
	Limit *int
}

func bindVectorSearchParams(q url.Values) (vectorSearchParams, error) {
	var p vectorSearchParams
	if err := runtime.BindQueryParameter("form", true, true, "q", q, &p.Q); err != nil {
		return vectorSearchParams{}, fmt.Errorf("parameter %q: %w", "q", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &p.Limit); err != nil {
		return vectorSearchParams{}, fmt.Errorf("parameter %q: %w", "limit", err)
	}
	return p, nil
}

// reportParams are the aggregation report query parameters.
type reportParams struct {
	Limit   *int
	MovieID *string
}

func bindReportParams(q url.Values) (reportParams, error) {
	var p reportParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &p.Limit); err != nil {
		return reportParams{}, fmt.Errorf("parameter %q: %w", "limit", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "movie_id", q, &p.MovieID); err != nil {
		return reportParams{}, fmt.Errorf("parameter %q: %w", "movie_id", err)
	}
	return p, nil
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
