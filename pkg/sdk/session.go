package mflix

import (
	"context"
)

// Mode identifies the active browse mode of a Session.
type Mode string

const (
	// ModeList browses the catalog listing with filters.
	ModeList Mode = "list"
	// ModeText browses full-text search results.
	ModeText Mode = "text"
	// ModeVector browses vector-search results paged in memory.
	ModeVector Mode = "vector"
)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDebug makes fetch failures surface as errors instead of empty pages.
func WithDebug() SessionOption {
	return func(s *Session) { s.debug = true }
}

// Session holds browse state across calls: the active mode, list filters
// and cursor, text-search terms, the set of selected movie ids, and the
// fully fetched vector-search result slice.
//
// Outside debug mode a failed fetch yields an empty page and the error is
// retained for LastError. Session is not safe for concurrent use.
type Session struct {
	client *Client
	debug  bool

	mode    Mode
	filters ListOptions
	search  TextSearchOptions

	selected map[string]struct{}

	vectorHits []ScoredMovie
	lastErr    error
}

// NewSession creates a Session in list mode.
func NewSession(client *Client, opts ...SessionOption) *Session {
	s := &Session{
		client:   client,
		mode:     ModeList,
		selected: make(map[string]struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Mode returns the active browse mode.
func (s *Session) Mode() Mode { return s.mode }

// LastError returns the error of the most recent fetch, if any.
func (s *Session) LastError() error { return s.lastErr }

// SetFilters replaces the listing filters, switches to list mode and
// resets the cursor to the first page.
func (s *Session) SetFilters(opts ListOptions) {
	opts.Skip = 0
	s.filters = opts
	s.mode = ModeList
}

// Browse fetches the current list page.
func (s *Session) Browse(ctx context.Context) (Page[Movie], error) {
	s.mode = ModeList
	page, err := s.client.Movies().List(ctx, s.filters)
	if err != nil {
		return s.failPage(err)
	}
	s.lastErr = nil
	return page, nil
}

// NextPage advances the list cursor and fetches the next page.
func (s *Session) NextPage(ctx context.Context) (Page[Movie], error) {
	s.filters.Skip += s.pageSize()
	return s.Browse(ctx)
}

// PrevPage rewinds the list cursor and fetches the previous page.
// Already on the first page it refetches it.
func (s *Session) PrevPage(ctx context.Context) (Page[Movie], error) {
	s.filters.Skip -= s.pageSize()
	if s.filters.Skip < 0 {
		s.filters.Skip = 0
	}
	return s.Browse(ctx)
}

func (s *Session) pageSize() int {
	if s.filters.Limit > 0 {
		return s.filters.Limit
	}
	return 20
}

// SearchText runs a full-text search and switches to text mode.
func (s *Session) SearchText(ctx context.Context, opts TextSearchOptions) (TextSearchResult, error) {
	s.mode = ModeText
	s.search = opts
	result, err := s.client.Search().Text(ctx, opts)
	if err != nil {
		s.lastErr = err
		if s.debug {
			return TextSearchResult{}, err
		}
		return TextSearchResult{Movies: []Movie{}}, nil
	}
	s.lastErr = nil
	return result, nil
}

// SearchVector runs a vector search once and retains the full result slice
// for in-memory paging. Switches to vector mode.
func (s *Session) SearchVector(ctx context.Context, query string, limit int) error {
	s.mode = ModeVector
	hits, err := s.client.Search().Vector(ctx, query, limit)
	if err != nil {
		s.vectorHits = nil
		s.lastErr = err
		if s.debug {
			return err
		}
		return nil
	}
	s.vectorHits = hits
	s.lastErr = nil
	return nil
}

// VectorPage returns page n (1-based) of size pageSize from the retained
// vector-search results. Paging slices the in-memory result set and never
// issues a network call; a page past the end is empty with HasNextPage
// false.
func (s *Session) VectorPage(n, pageSize int) Page[ScoredMovie] {
	if n < 1 {
		n = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	skip := (n - 1) * pageSize
	info := PageInfo{Limit: pageSize, Skip: skip, HasPrevPage: skip > 0}

	if skip >= len(s.vectorHits) {
		return Page[ScoredMovie]{Items: []ScoredMovie{}, Info: info}
	}

	end := skip + pageSize
	if end > len(s.vectorHits) {
		end = len(s.vectorHits)
	}

	items := s.vectorHits[skip:end]
	info.Returned = len(items)
	info.HasNextPage = end < len(s.vectorHits)
	return Page[ScoredMovie]{Items: items, Info: info}
}

// VectorResultCount reports how many vector-search hits are retained.
func (s *Session) VectorResultCount() int { return len(s.vectorHits) }

// Select marks a movie id as selected.
func (s *Session) Select(id string) { s.selected[id] = struct{}{} }

// Deselect removes a movie id from the selection.
func (s *Session) Deselect(id string) { delete(s.selected, id) }

// IsSelected reports whether a movie id is selected.
func (s *Session) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Selected returns the selected movie ids.
func (s *Session) Selected() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return ids
}

// ClearSelection empties the selection set.
func (s *Session) ClearSelection() { s.selected = make(map[string]struct{}) }

// DeleteSelected batch-deletes the selected movies and clears the
// selection on success.
func (s *Session) DeleteSelected(ctx context.Context) (BatchDeleteResult, error) {
	ids := s.Selected()
	if len(ids) == 0 {
		return BatchDeleteResult{}, nil
	}

	result, err := s.client.Movies().DeleteBatch(ctx, ids)
	if err != nil {
		s.lastErr = err
		return BatchDeleteResult{}, err
	}
	s.ClearSelection()
	s.lastErr = nil
	return result, nil
}

func (s *Session) failPage(err error) (Page[Movie], error) {
	s.lastErr = err
	if s.debug {
		return Page[Movie]{}, err
	}
	return Page[Movie]{Items: []Movie{}}, nil
}
