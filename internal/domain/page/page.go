// Package page implements limit/skip pagination with over-fetch based
// next-page detection: the store is asked for one record beyond the page
// size, which answers "is there a following page" without a count query.
package page

import (
	"fmt"

	"github.com/kailas-cloud/mflix/internal/domain"
)

// Page size bounds.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Cursor describes one requested page of results.
type Cursor struct {
	limit int
	skip  int
}

// NewCursor validates and normalizes pagination parameters.
// limit 0 means "default"; skip must be non-negative.
func NewCursor(limit, skip int) (Cursor, error) {
	if limit < 0 {
		return Cursor{}, fmt.Errorf("%w: limit must be positive", domain.ErrValidation)
	}
	if skip < 0 {
		return Cursor{}, fmt.Errorf("%w: skip must not be negative", domain.ErrValidation)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Cursor{limit: limit, skip: skip}, nil
}

// Limit returns the page size the caller asked for.
func (c Cursor) Limit() int { return c.limit }

// Skip returns the offset into the result set.
func (c Cursor) Skip() int { return c.skip }

// FetchLimit returns the store-side limit: one extra record to detect a
// following page in the same round trip.
func (c Cursor) FetchLimit() int { return c.limit + 1 }

// Info describes the position of a returned page. This is a page-existence
// answer, not a total count.
type Info struct {
	Limit       int  `json:"limit"`
	Skip        int  `json:"skip"`
	Returned    int  `json:"returned"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Trim drops the over-fetched record and reports page existence.
// HasNextPage is true iff the store returned more than Limit records;
// HasPrevPage is true iff the cursor skipped past the start.
func Trim[T any](items []T, c Cursor) ([]T, Info) {
	hasNext := len(items) > c.limit
	if hasNext {
		items = items[:c.limit]
	}
	return items, Info{
		Limit:       c.limit,
		Skip:        c.skip,
		Returned:    len(items),
		HasNextPage: hasNext,
		HasPrevPage: c.skip > 0,
	}
}
