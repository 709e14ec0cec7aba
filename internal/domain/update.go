package domain

import "time"

// MovieUpdate is a partial movie: only non-nil fields are written. The
// document id is never updatable; transports strip it before building one.
type MovieUpdate struct {
	Title     *string    `json:"title,omitempty"`
	Year      *int       `json:"year,omitempty"`
	Plot      *string    `json:"plot,omitempty"`
	Fullplot  *string    `json:"fullplot,omitempty"`
	Released  *time.Time `json:"released,omitempty"`
	Runtime   *int       `json:"runtime,omitempty"`
	Rated     *string    `json:"rated,omitempty"`
	Poster    *string    `json:"poster,omitempty"`
	Genres    []string   `json:"genres,omitempty"`
	Directors []string   `json:"directors,omitempty"`
	Writers   []string   `json:"writers,omitempty"`
	Cast      []string   `json:"cast,omitempty"`
	Countries []string   `json:"countries,omitempty"`
	Languages []string   `json:"languages,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u *MovieUpdate) IsEmpty() bool {
	return u.Title == nil && u.Year == nil && u.Plot == nil && u.Fullplot == nil &&
		u.Released == nil && u.Runtime == nil && u.Rated == nil && u.Poster == nil &&
		u.Genres == nil && u.Directors == nil && u.Writers == nil &&
		u.Cast == nil && u.Countries == nil && u.Languages == nil
}

// Validate checks updatable field invariants.
func (u *MovieUpdate) Validate() error {
	if u.Title != nil && *u.Title == "" {
		return ErrTitleRequired
	}
	if u.Runtime != nil && *u.Runtime <= 0 {
		return ErrRuntimeInvalid
	}
	return nil
}
