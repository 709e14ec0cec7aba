package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mflix/internal/domain"
	"github.com/kailas-cloud/mflix/internal/domain/filter"
	"github.com/kailas-cloud/mflix/internal/domain/page"
	domsearch "github.com/kailas-cloud/mflix/internal/domain/search"
	batchuc "github.com/kailas-cloud/mflix/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/mflix/internal/usecase/health"
	moviesuc "github.com/kailas-cloud/mflix/internal/usecase/movies"
	reportsuc "github.com/kailas-cloud/mflix/internal/usecase/reports"
	searchuc "github.com/kailas-cloud/mflix/internal/usecase/search"
)

type stubMovieRepo struct {
	listMovies []domain.Movie
	getErr     error
	movie      domain.Movie
	deleted    int64
	matched    int64
}

func (s *stubMovieRepo) List(context.Context, *filter.Spec, page.Cursor) ([]domain.Movie, error) {
	return s.listMovies, nil
}

func (s *stubMovieRepo) Get(context.Context, primitive.ObjectID) (domain.Movie, error) {
	return s.movie, s.getErr
}

func (s *stubMovieRepo) Insert(context.Context, *domain.Movie) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (s *stubMovieRepo) UpdateOne(context.Context, primitive.ObjectID, *domain.MovieUpdate) (int64, int64, error) {
	return s.matched, s.matched, nil
}

func (s *stubMovieRepo) DeleteOne(context.Context, primitive.ObjectID) (int64, error) {
	return s.deleted, nil
}

func (s *stubMovieRepo) FindOneAndDelete(context.Context, primitive.ObjectID) (domain.Movie, error) {
	return s.movie, s.getErr
}

func (s *stubMovieRepo) DistinctGenres(context.Context) ([]string, error) {
	return []string{"Drama"}, nil
}

type stubBatchRepo struct {
	insertCalls int
}

func (s *stubBatchRepo) InsertMany(_ context.Context, ms []domain.Movie) ([]primitive.ObjectID, error) {
	s.insertCalls++
	ids := make([]primitive.ObjectID, len(ms))
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}
	return ids, nil
}

func (s *stubBatchRepo) UpdateMany(context.Context, []primitive.ObjectID, *domain.MovieUpdate) (int64, int64, error) {
	return 2, 1, nil
}

func (s *stubBatchRepo) DeleteMany(context.Context, []primitive.ObjectID) (int64, error) {
	return 2, nil
}

type stubSearchRepo struct{}

func (stubSearchRepo) Text(context.Context, *domsearch.Request) ([]domain.Movie, int64, error) {
	return []domain.Movie{{Title: "Heat"}}, 1, nil
}

func (stubSearchRepo) Vector(context.Context, []float32, int) ([]domain.ScoredMovie, error) {
	return []domain.ScoredMovie{{Title: "Moon", Score: 0.9}}, nil
}

type stubReportsRepo struct{}

func (stubReportsRepo) ByComments(context.Context, *primitive.ObjectID, int) ([]domain.MovieComments, error) {
	return nil, nil
}

func (stubReportsRepo) ByYear(context.Context) ([]domain.YearStats, error) {
	return []domain.YearStats{{Year: 2000, MovieCount: 3}}, nil
}

func (stubReportsRepo) ByDirectors(context.Context, int) ([]domain.DirectorStats, error) {
	return nil, nil
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubEmbedder struct{}

func (stubEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: []float32{0.1}}, nil
}

type serverFixture struct {
	movieRepo *stubMovieRepo
	batchRepo *stubBatchRepo
	router    *chi.Mux
}

func newFixture(withEmbedder bool) *serverFixture {
	movieRepo := &stubMovieRepo{}
	batchRepo := &stubBatchRepo{}

	var embedder searchuc.Embedder
	if withEmbedder {
		embedder = stubEmbedder{}
	}

	srv := NewServer(
		moviesuc.New(movieRepo),
		batchuc.New(batchRepo),
		searchuc.New(stubSearchRepo{}, embedder),
		reportsuc.New(stubReportsRepo{}),
		healthuc.New(stubPinger{}, nil, nil),
		zap.NewNop(),
	)

	r := chi.NewRouter()
	srv.Routes(r)
	return &serverFixture{movieRepo: movieRepo, batchRepo: batchRepo, router: r}
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body: %v\n%s", err, rec.Body.String())
	}
	return env
}

func TestListMovies_PaginationEnvelope(t *testing.T) {
	f := newFixture(false)
	f.movieRepo.listMovies = []domain.Movie{{Title: "a"}, {Title: "b"}, {Title: "c"}}

	rec := doRequest(t, f.router, http.MethodGet, "/api/movies/?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if env["success"] != true {
		t.Errorf("success: got %v", env["success"])
	}
	pg, ok := env["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("missing pagination: %v", env)
	}
	if pg["hasNextPage"] != true || pg["hasPrevPage"] != false {
		t.Errorf("unexpected pagination: %v", pg)
	}
	if pg["returned"] != float64(2) {
		t.Errorf("returned: got %v", pg["returned"])
	}
}

func TestGetMovie_MalformedID(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodGet, "/api/movies/not-hex", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env["success"] != false {
		t.Errorf("success: got %v", env["success"])
	}
	errObj := env["error"].(map[string]any)
	if errObj["code"] != "INVALID_OBJECT_ID" {
		t.Errorf("code: got %v", errObj["code"])
	}
}

func TestGetMovie_NotFound(t *testing.T) {
	f := newFixture(false)
	f.movieRepo.getErr = domain.ErrNotFound

	rec := doRequest(t, f.router, http.MethodGet, "/api/movies/573a1390f29313caabcd42e8", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d", rec.Code)
	}
}

func TestCreateMovie_MissingTitle(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodPost, "/api/movies/", `{"year": 1999}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}
	errObj := decodeEnvelope(t, rec)["error"].(map[string]any)
	if errObj["code"] != "VALIDATION_FAILED" {
		t.Errorf("code: got %v", errObj["code"])
	}
}

func TestCreateMoviesBatch_SingleInsert(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodPost, "/api/movies/batch",
		`[{"title": "a"}, {"title": "b"}]`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}
	if f.batchRepo.insertCalls != 1 {
		t.Fatalf("insert calls: got %d", f.batchRepo.insertCalls)
	}

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["insertedCount"] != float64(2) {
		t.Errorf("insertedCount: got %v", data["insertedCount"])
	}
	if ids := data["insertedIds"].([]any); len(ids) != 2 {
		t.Errorf("insertedIds: got %v", ids)
	}
}

func TestUpdateMoviesBatch_FilterBody(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodPatch, "/api/movies/",
		`{"filter": {"_id": {"$in": ["573a1390f29313caabcd42e8", "573a1390f29313caabcd4323"]}},
		  "update": {"rated": "PG"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["matchedCount"] != float64(2) {
		t.Errorf("matchedCount: got %v", data["matchedCount"])
	}
	if data["modifiedCount"] != float64(1) {
		t.Errorf("modifiedCount: got %v", data["modifiedCount"])
	}
}

func TestUpdateMoviesBatch_MissingFilter(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodPatch, "/api/movies/",
		`{"update": {"title": "x"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}
	errObj := decodeEnvelope(t, rec)["error"].(map[string]any)
	if errObj["code"] != "VALIDATION_FAILED" {
		t.Errorf("code: got %v", errObj["code"])
	}
}

func TestUpdateMoviesBatch_MalformedID(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodPatch, "/api/movies/",
		`{"filter": {"_id": {"$in": ["573a1390f29313caabcd42e8", "zzz"]}}, "update": {"title": "x"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}
}

func TestDeleteMoviesBatch_FilterBody(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodDelete, "/api/movies/",
		`{"filter": {"_id": {"$in": ["573a1390f29313caabcd42e8", "573a1390f29313caabcd4323"]}}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["deletedCount"] != float64(2) {
		t.Errorf("deletedCount: got %v", data["deletedCount"])
	}
}

func TestDeleteMoviesBatch_EmptyIDs(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodDelete, "/api/movies/", `{"filter": {"_id": {"$in": []}}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}
	errObj := decodeEnvelope(t, rec)["error"].(map[string]any)
	if errObj["code"] != "EMPTY_BATCH" {
		t.Errorf("code: got %v", errObj["code"])
	}
}

func TestSearchMovies_NoFields(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodGet, "/api/movies/search", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}
}

func TestSearchMovies_TotalCount(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodGet, "/api/movies/search?plot=heist", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["totalCount"] != float64(1) {
		t.Errorf("totalCount: got %v", data["totalCount"])
	}
}

func TestVectorSearch_UnconfiguredProvider(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodGet, "/api/movies/vector-search?q=space", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}
	errObj := decodeEnvelope(t, rec)["error"].(map[string]any)
	if errObj["code"] != "SERVICE_UNAVAILABLE" {
		t.Errorf("code: got %v", errObj["code"])
	}
}

func TestVectorSearch_ReturnsScoredHits(t *testing.T) {
	f := newFixture(true)

	rec := doRequest(t, f.router, http.MethodGet, "/api/movies/vector-search?q=space", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}
	hits := decodeEnvelope(t, rec)["data"].([]any)
	if len(hits) != 1 {
		t.Fatalf("hits: got %d", len(hits))
	}
	if hits[0].(map[string]any)["score"] != 0.9 {
		t.Errorf("score: got %v", hits[0])
	}
}

func TestReportByYear(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodGet, "/api/movies/aggregations/reportingByYear", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d\n%s", rec.Code, rec.Body.String())
	}
	rows := decodeEnvelope(t, rec)["data"].([]any)
	if len(rows) != 1 {
		t.Fatalf("rows: got %d", len(rows))
	}
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(false)

	rec := doRequest(t, f.router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var report healthuc.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Status != healthuc.Healthy {
		t.Errorf("status: got %s", report.Status)
	}
}
