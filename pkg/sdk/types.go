package mflix

import (
	"encoding/json"

	"github.com/kailas-cloud/mflix/internal/domain"
	"github.com/kailas-cloud/mflix/internal/domain/page"
)

// Movie is the catalog document as served by the API.
type Movie = domain.Movie

// ScoredMovie is a vector-search hit with its similarity score.
type ScoredMovie = domain.ScoredMovie

// MovieUpdate is a partial update payload. Nil fields are left untouched.
type MovieUpdate = domain.MovieUpdate

// MovieComments is a row of the comment activity report.
type MovieComments = domain.MovieComments

// YearStats is a row of the per-year statistics report.
type YearStats = domain.YearStats

// DirectorStats is a row of the most-prolific-directors report.
type DirectorStats = domain.DirectorStats

// PageInfo describes the window a list call returned.
type PageInfo = page.Info

// Page is a window of list results plus its pagination info.
type Page[T any] struct {
	Items []T
	Info  PageInfo
}

// BatchCreateResult reports the outcome of a batch create.
type BatchCreateResult struct {
	InsertedCount int      `json:"insertedCount"`
	InsertedIDs   []string `json:"insertedIds"`
}

// BatchUpdateResult reports the outcome of a batch update.
type BatchUpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// BatchDeleteResult reports the outcome of a batch delete.
type BatchDeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// TextSearchResult holds text-search hits and the exact total match count.
type TextSearchResult struct {
	Movies     []Movie  `json:"movies"`
	TotalCount int64    `json:"totalCount"`
	Info       PageInfo `json:"-"`
}

// envelope is the wire format shared by all API responses.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Timestamp  string          `json:"timestamp"`
	Pagination *PageInfo       `json:"pagination"`
	Error      *envelopeError  `json:"error"`
}

type envelopeError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
}
