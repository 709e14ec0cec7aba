// Package filter turns loosely-typed listing parameters into a validated
// filter and sort specification.
package filter

import (
	"fmt"

	"github.com/kailas-cloud/mflix/internal/domain"
)

// Rating bounds on the nested imdb.rating field.
const (
	MinRating = 0
	MaxRating = 10
)

// SortField is an enumerated sortable field.
type SortField string

// Sortable fields. Anything else supplied by a client is ignored.
const (
	SortByTitle  SortField = "title"
	SortByYear   SortField = "year"
	SortByRating SortField = "rating"
)

// Order is a sort direction.
type Order string

// Sort directions. Ascending is the default.
const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Spec is a normalized set of listing constraints. A nil pointer or empty
// string means "no constraint on that dimension".
type Spec struct {
	query     string
	title     string
	genre     string
	year      *int
	minRating *float64
	maxRating *float64
	sortBy    SortField
	sortOrder Order
}

// Params are the raw, possibly-absent listing parameters as bound from the
// query string.
type Params struct {
	Query     string
	Title     string
	Genre     string
	Year      *int
	MinRating *float64
	MaxRating *float64
	SortBy    string
	SortOrder string
}

// New validates and normalizes listing parameters into a Spec.
// Invalid rating bounds are rejected; an unknown sortBy is ignored rather
// than rejected; sortOrder defaults to ascending when sortBy is present.
func New(p Params) (Spec, error) {
	s := Spec{
		query: p.Query,
		title: p.Title,
		genre: p.Genre,
		year:  p.Year,
	}

	if p.MinRating != nil {
		if *p.MinRating < MinRating || *p.MinRating > MaxRating {
			return Spec{}, fmt.Errorf(
				"%w: minRating must be between %d and %d", domain.ErrValidation, MinRating, MaxRating,
			)
		}
		s.minRating = p.MinRating
	}
	if p.MaxRating != nil {
		if *p.MaxRating < MinRating || *p.MaxRating > MaxRating {
			return Spec{}, fmt.Errorf(
				"%w: maxRating must be between %d and %d", domain.ErrValidation, MinRating, MaxRating,
			)
		}
		s.maxRating = p.MaxRating
	}
	if s.minRating != nil && s.maxRating != nil && *s.minRating > *s.maxRating {
		return Spec{}, fmt.Errorf(
			"%w: minRating %.1f exceeds maxRating %.1f", domain.ErrValidation, *s.minRating, *s.maxRating,
		)
	}

	switch SortField(p.SortBy) {
	case SortByTitle, SortByYear, SortByRating:
		s.sortBy = SortField(p.SortBy)
	default:
		// Unknown sort field: natural order.
	}

	if s.sortBy != "" {
		switch Order(p.SortOrder) {
		case Desc:
			s.sortOrder = Desc
		case Asc, "":
			s.sortOrder = Asc
		default:
			return Spec{}, fmt.Errorf(
				"%w: sortOrder must be %q or %q", domain.ErrValidation, Asc, Desc,
			)
		}
	}

	return s, nil
}

// Query returns the free-text search term ("" = none).
func (s *Spec) Query() string { return s.query }

// Title returns the title substring constraint ("" = none).
func (s *Spec) Title() string { return s.title }

// Genre returns the genre membership constraint ("" = none).
func (s *Spec) Genre() string { return s.genre }

// Year returns the exact year constraint (nil = none).
func (s *Spec) Year() *int { return s.year }

// MinRating returns the inclusive lower rating bound (nil = none).
func (s *Spec) MinRating() *float64 { return s.minRating }

// MaxRating returns the inclusive upper rating bound (nil = none).
func (s *Spec) MaxRating() *float64 { return s.maxRating }

// SortBy returns the sort field ("" = natural order).
func (s *Spec) SortBy() SortField { return s.sortBy }

// SortOrder returns the sort direction ("" when SortBy is empty).
func (s *Spec) SortOrder() Order { return s.sortOrder }

// IsEmpty reports whether no constraint is set on any dimension.
func (s *Spec) IsEmpty() bool {
	return s.query == "" && s.title == "" && s.genre == "" &&
		s.year == nil && s.minRating == nil && s.maxRating == nil
}
