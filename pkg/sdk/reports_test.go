package mflix

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestReports_ByYear(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK,
		`{"success": true, "message": "Found stats for 2 years",
		  "data": [{"year": 2001, "movieCount": 5, "averageRating": 7.2},
		           {"year": 2000, "movieCount": 3, "averageRating": 6.9}],
		  "timestamp": "2026-01-01T00:00:00Z"}`))
	defer srv.Close()

	rows, err := New(srv.URL).Reports().ByYear(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d", len(rows))
	}
	if rows[0].Year != 2001 || rows[0].MovieCount != 5 {
		t.Errorf("first row: %+v", rows[0])
	}
}

func TestReports_ByComments_Params(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("movie_id"); got != "573a1390f29313caabcd42e8" {
			t.Errorf("movie_id param: got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit param: got %q", got)
		}
		jsonHandler(http.StatusOK,
			`{"success": true, "message": "ok", "data": [], "timestamp": "2026-01-01T00:00:00Z"}`)(w, r)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Reports().ByComments(context.Background(), "573a1390f29313caabcd42e8", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReports_TimeoutSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		jsonHandler(http.StatusOK,
			`{"success": true, "message": "ok", "data": [], "timestamp": "2026-01-01T00:00:00Z"}`)(w, r)
	}))
	defer srv.Close()

	client := New(srv.URL, WithAggregationTimeout(20*time.Millisecond))
	_, err := client.Reports().ByDirectors(context.Background(), 0)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestReports_TimeoutDoesNotAffectOtherCalls(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK,
		`{"success": true, "message": "ok", "data": {"title": "Heat"},
		  "timestamp": "2026-01-01T00:00:00Z"}`))
	defer srv.Close()

	client := New(srv.URL, WithAggregationTimeout(20*time.Millisecond))
	if _, err := client.Movies().Get(context.Background(), "573a1390f29313caabcd42e8"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
