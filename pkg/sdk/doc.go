// Package mflix provides a Go client for the mflix movie catalog API.
//
// The client wraps the HTTP endpoints with typed calls and decodes the
// response envelope, so callers work with domain types and sentinel errors
// instead of raw JSON:
//
//	client := mflix.New("http://localhost:8080")
//	movie, err := client.Movies().Get(ctx, id)
//	if errors.Is(err, mflix.ErrNotFound) { ... }
//
// A Session carries browse state across calls: active filters, the current
// list cursor, the set of selected movie ids, and the fully fetched
// vector-search result slice. Vector-search results are paged in memory,
// so stepping through pages never re-issues the query:
//
//	session := mflix.NewSession(client)
//	session.SearchVector(ctx, "lonely robot in space", 50)
//	first := session.VectorPage(1, 20)
//	second := session.VectorPage(2, 20) // no network call
package mflix
