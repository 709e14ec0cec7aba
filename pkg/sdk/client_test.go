package mflix

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestGet_DecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK,
		`{"success": true, "message": "Movie found", "data": {"title": "Heat", "year": 1995},
		  "timestamp": "2026-01-01T00:00:00Z"}`))
	defer srv.Close()

	movie, err := New(srv.URL).Movies().Get(context.Background(), "573a1390f29313caabcd42e8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie.Title != "Heat" {
		t.Errorf("title: got %q", movie.Title)
	}
	if movie.Year == nil || *movie.Year != 1995 {
		t.Errorf("year: got %v", movie.Year)
	}
}

func TestGet_NotFoundSentinel(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusNotFound,
		`{"success": false, "message": "Movie not found",
		  "error": {"message": "Movie not found", "code": "MOVIE_NOT_FOUND"},
		  "timestamp": "2026-01-01T00:00:00Z"}`))
	defer srv.Close()

	_, err := New(srv.URL).Movies().Get(context.Background(), "573a1390f29313caabcd42e8")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "MOVIE_NOT_FOUND" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestGet_InvalidIDSentinel(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusBadRequest,
		`{"success": false, "message": "Invalid movie ID format",
		  "error": {"message": "Invalid movie ID format", "code": "INVALID_OBJECT_ID"},
		  "timestamp": "2026-01-01T00:00:00Z"}`))
	defer srv.Close()

	_, err := New(srv.URL).Movies().Get(context.Background(), "xyz")
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestList_Pagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("genre"); got != "Drama" {
			t.Errorf("genre param: got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("limit param: got %q", got)
		}
		jsonHandler(http.StatusOK,
			`{"success": true, "message": "Found 2 movies",
			  "data": [{"title": "a"}, {"title": "b"}],
			  "pagination": {"limit": 2, "skip": 0, "returned": 2, "hasNextPage": true, "hasPrevPage": false},
			  "timestamp": "2026-01-01T00:00:00Z"}`)(w, r)
	}))
	defer srv.Close()

	page, err := New(srv.URL).Movies().List(context.Background(), ListOptions{Genre: "Drama", Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("items: got %d", len(page.Items))
	}
	if !page.Info.HasNextPage || page.Info.HasPrevPage {
		t.Errorf("unexpected page info: %+v", page.Info)
	}
}

func TestCreateBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/movies/batch" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		jsonHandler(http.StatusCreated,
			`{"success": true, "message": "Successfully created 2 movies",
			  "data": {"insertedCount": 2, "insertedIds": ["573a1390f29313caabcd42e8", "573a1390f29313caabcd42e9"]},
			  "timestamp": "2026-01-01T00:00:00Z"}`)(w, r)
	}))
	defer srv.Close()

	result, err := New(srv.URL).Movies().CreateBatch(context.Background(),
		[]Movie{{Title: "a"}, {Title: "b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.InsertedCount != 2 || len(result.InsertedIDs) != 2 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestUpdateBatch_FilterBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/movies/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var body struct {
			Filter struct {
				ID struct {
					In []string `json:"$in"`
				} `json:"_id"`
			} `json:"filter"`
			Update map[string]any `json:"update"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body.Filter.ID.In) != 2 {
			t.Errorf("filter ids: got %v", body.Filter.ID.In)
		}
		if body.Update == nil {
			t.Error("update object missing")
		}

		jsonHandler(http.StatusOK,
			`{"success": true, "message": "Successfully updated 2 movies",
			  "data": {"matchedCount": 2, "modifiedCount": 2},
			  "timestamp": "2026-01-01T00:00:00Z"}`)(w, r)
	}))
	defer srv.Close()

	rated := "PG"
	result, err := New(srv.URL).Movies().UpdateBatch(context.Background(),
		[]string{"573a1390f29313caabcd42e8", "573a1390f29313caabcd4323"},
		MovieUpdate{Rated: &rated})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MatchedCount != 2 || result.ModifiedCount != 2 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestSearchText_TotalCount(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK,
		`{"success": true, "message": "Found 1 movies",
		  "data": {"movies": [{"title": "Heat"}], "totalCount": 42},
		  "pagination": {"limit": 20, "skip": 0, "returned": 1, "hasNextPage": false, "hasPrevPage": false},
		  "timestamp": "2026-01-01T00:00:00Z"}`))
	defer srv.Close()

	result, err := New(srv.URL).Search().Text(context.Background(), TextSearchOptions{Plot: "heist"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCount != 42 {
		t.Errorf("totalCount: got %d", result.TotalCount)
	}
	if len(result.Movies) != 1 {
		t.Errorf("movies: got %d", len(result.Movies))
	}
}
