package mflix

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// SearchService provides full-text and semantic search.
type SearchService struct {
	client *Client
}

// TextSearchOptions are per-field search terms plus the combination operator.
// At least one field term is required.
type TextSearchOptions struct {
	Plot      string
	Fullplot  string
	Directors string
	Writers   string
	Cast      string
	Operator  string // must, should, mustNot, filter (default must)
	Limit     int
	Skip      int
}

func (o TextSearchOptions) values() url.Values {
	q := url.Values{}
	setStr := func(name, v string) {
		if v != "" {
			q.Set(name, v)
		}
	}
	setStr("plot", o.Plot)
	setStr("fullplot", o.Fullplot)
	setStr("directors", o.Directors)
	setStr("writers", o.Writers)
	setStr("cast", o.Cast)
	setStr("searchOperator", o.Operator)
	if o.Limit != 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Skip != 0 {
		q.Set("skip", strconv.Itoa(o.Skip))
	}
	return q
}

// Text runs a full-text search and returns hits plus the exact total count.
func (s *SearchService) Text(ctx context.Context, opts TextSearchOptions) (TextSearchResult, error) {
	var result TextSearchResult
	info, err := s.client.do(ctx, http.MethodGet, "/api/movies/search", opts.values(), nil, &result)
	if err != nil {
		return TextSearchResult{}, err
	}
	if info != nil {
		result.Info = *info
	}
	return result, nil
}

// Vector embeds the query server-side and returns the nearest movies with
// similarity scores. limit 0 uses the server default.
func (s *SearchService) Vector(ctx context.Context, query string, limit int) ([]ScoredMovie, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit != 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var hits []ScoredMovie
	_, err := s.client.do(ctx, http.MethodGet, "/api/movies/vector-search", q, nil, &hits)
	return hits, err
}
