// Package search holds validated text and vector search requests.
package search

import (
	"fmt"

	"github.com/kailas-cloud/mflix/internal/domain"
	"github.com/kailas-cloud/mflix/internal/domain/page"
)

// Operator selects how multiple field clauses are combined in a compound
// search query.
type Operator string

// Compound operators.
const (
	Must    Operator = "must"
	Should  Operator = "should"
	MustNot Operator = "mustNot"
	Filter  Operator = "filter"
)

// IsValid reports whether the operator is one of the compound operators.
func (o Operator) IsValid() bool {
	switch o {
	case Must, Should, MustNot, Filter:
		return true
	}
	return false
}

// Request is a validated per-field text search.
type Request struct {
	plot      string
	fullplot  string
	directors string
	writers   string
	cast      string
	operator  Operator
	cursor    page.Cursor
}

// NewRequest validates a text search. At least one field term is required;
// the operator defaults to must.
func NewRequest(plot, fullplot, directors, writers, cast string, op Operator, cursor page.Cursor) (Request, error) {
	if op == "" {
		op = Must
	}
	if !op.IsValid() {
		return Request{}, fmt.Errorf(
			"%w: search operator %q must be one of must, should, mustNot, filter",
			domain.ErrValidation, op,
		)
	}
	if plot == "" && fullplot == "" && directors == "" && writers == "" && cast == "" {
		return Request{}, fmt.Errorf(
			"%w: at least one search field is required", domain.ErrValidation,
		)
	}
	return Request{
		plot:      plot,
		fullplot:  fullplot,
		directors: directors,
		writers:   writers,
		cast:      cast,
		operator:  op,
		cursor:    cursor,
	}, nil
}

// Plot returns the plot term ("" = unused).
func (r *Request) Plot() string { return r.plot }

// Fullplot returns the fullplot term ("" = unused).
func (r *Request) Fullplot() string { return r.fullplot }

// Directors returns the directors term ("" = unused).
func (r *Request) Directors() string { return r.directors }

// Writers returns the writers term ("" = unused).
func (r *Request) Writers() string { return r.writers }

// Cast returns the cast term ("" = unused).
func (r *Request) Cast() string { return r.cast }

// Operator returns the compound operator.
func (r *Request) Operator() Operator { return r.operator }

// Cursor returns the pagination cursor.
func (r *Request) Cursor() page.Cursor { return r.cursor }

// Vector search limits.
const (
	DefaultVectorLimit = 10
	MaxVectorLimit     = 50
)

// VectorRequest is a validated semantic search. There is no skip: the
// caller fetches up to Limit ranked results and paginates client-side.
type VectorRequest struct {
	query string
	limit int
}

// NewVectorRequest validates a vector search query.
func NewVectorRequest(query string, limit int) (VectorRequest, error) {
	if query == "" {
		return VectorRequest{}, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	if limit < 0 {
		return VectorRequest{}, fmt.Errorf("%w: limit must be positive", domain.ErrValidation)
	}
	if limit == 0 {
		limit = DefaultVectorLimit
	}
	if limit > MaxVectorLimit {
		limit = MaxVectorLimit
	}
	return VectorRequest{query: query, limit: limit}, nil
}

// Query returns the free-text query.
func (r *VectorRequest) Query() string { return r.query }

// Limit returns the maximum number of ranked results.
func (r *VectorRequest) Limit() int { return r.limit }
