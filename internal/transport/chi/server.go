// Package chi is the HTTP transport: route wiring, parameter binding and
// the response envelope.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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

// Machine-readable error codes in the error envelope.
const (
	codeBadRequest         = "BAD_REQUEST"
	codeInvalidID          = "INVALID_OBJECT_ID"
	codeValidationFailed   = "VALIDATION_FAILED"
	codeEmptyBatch         = "EMPTY_BATCH"
	codeMovieNotFound      = "MOVIE_NOT_FOUND"
	codeServiceUnavailable = "SERVICE_UNAVAILABLE"
	codeEmbeddingAuth      = "EMBEDDING_AUTH_ERROR"
	codeEmbeddingRateLimit = "EMBEDDING_RATE_LIMITED"
	codeEmbeddingProvider  = "EMBEDDING_PROVIDER_ERROR"
	codeInternalError      = "INTERNAL_ERROR"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the movie catalog API over chi.
type Server struct {
	movies        *moviesuc.Service
	batch         *batchuc.Service
	search        *searchuc.Service
	reports       *reportsuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	movies *moviesuc.Service,
	batch *batchuc.Service,
	search *searchuc.Service,
	reports *reportsuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		movies:  movies,
		batch:   batch,
		search:  search,
		reports: reports,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeMovieNotFound),
		sentinelHandler(domain.ErrInvalidID, http.StatusBadRequest, codeInvalidID),
		sentinelHandler(domain.ErrEmptyBatch, http.StatusBadRequest, codeEmptyBatch),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadRequest, codeServiceUnavailable),
		sentinelHandler(domain.ErrEmbeddingAuth, http.StatusBadGateway, codeEmbeddingAuth),
		sentinelHandler(domain.ErrEmbeddingRateLimited, http.StatusTooManyRequests, codeEmbeddingRateLimit),
		sentinelHandler(domain.ErrEmbeddingProvider, http.StatusBadGateway, codeEmbeddingProvider),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/", s.listMovies)
		r.Post("/", s.createMovie)
		r.Patch("/", s.updateMoviesBatch)
		r.Delete("/", s.deleteMoviesBatch)

		r.Post("/batch", s.createMoviesBatch)
		r.Get("/genres", s.listGenres)
		r.Get("/search", s.searchMovies)
		r.Get("/vector-search", s.vectorSearchMovies)

		r.Route("/aggregations", func(r chi.Router) {
			r.Get("/reportingByComments", s.reportByComments)
			r.Get("/reportingByYear", s.reportByYear)
			r.Get("/reportingByDirectors", s.reportByDirectors)
		})

		r.Get("/{id}", s.getMovie)
		r.Patch("/{id}", s.updateMovie)
		r.Delete("/{id}", s.deleteMovie)
		r.Delete("/{id}/find-and-delete", s.findAndDeleteMovie)
	})

	r.Get("/health", s.healthCheck)
	r.Get("/metrics", s.metricsEndpoint)
}

// listMovies handles GET /api/movies.
func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	p, err := bindListParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	items, info, err := s.movies.List(r.Context(), listFilterParams(p), derefInt(p.Limit), derefInt(p.Skip))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if items == nil {
		items = []domain.Movie{}
	}

	writePage(w, http.StatusOK, items, fmt.Sprintf("Found %d movies.", len(items)), info)
}

// getMovie handles GET /api/movies/{id}.
func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	m, err := s.movies.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, m, "Movie retrieved successfully")
}

// createMovie handles POST /api/movies.
func (s *Server) createMovie(w http.ResponseWriter, r *http.Request) {
	var m domain.Movie
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := s.movies.Create(r.Context(), &m)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, created, fmt.Sprintf("Movie %q created successfully", created.Title))
}

// createMoviesBatch handles POST /api/movies/batch. The batch is stored
// in a single insert; ids come back in input order.
func (s *Server) createMoviesBatch(w http.ResponseWriter, r *http.Request) {
	var ms []domain.Movie
	if err := json.NewDecoder(r.Body).Decode(&ms); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ids, err := s.batch.CreateMany(r.Context(), ms)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"insertedCount": len(ids),
		"insertedIds":   ids,
	}, fmt.Sprintf("Successfully created %d movies", len(ids)))
}

// updateMovie handles PATCH /api/movies/{id} and returns the updated
// document.
func (s *Server) updateMovie(w http.ResponseWriter, r *http.Request) {
	var u domain.MovieUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if _, _, err := s.movies.Update(r.Context(), id, &u); err != nil {
		s.handleDomainError(w, err)
		return
	}

	updated, err := s.movies.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, updated, "Movie updated successfully")
}

// batchFilter selects the documents a batch write applies to: an id
// list under the filter's _id.$in, mirroring the store's query shape.
type batchFilter struct {
	ID struct {
		In []string `json:"$in"`
	} `json:"_id"`
}

// batchUpdateRequest is the PATCH /api/movies body: a filter with the
// id list plus the fields to set on each matched document.
type batchUpdateRequest struct {
	Filter *batchFilter        `json:"filter"`
	Update *domain.MovieUpdate `json:"update"`
}

// updateMoviesBatch handles PATCH /api/movies.
func (s *Server) updateMoviesBatch(w http.ResponseWriter, r *http.Request) {
	var req batchUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Filter == nil || req.Update == nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Both filter and update objects are required")
		return
	}

	matched, modified, err := s.batch.UpdateMany(r.Context(), req.Filter.ID.In, req.Update)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]int64{
		"matchedCount":  matched,
		"modifiedCount": modified,
	}, fmt.Sprintf("Update operation completed. Matched %d movie(s), modified %d movie(s).", matched, modified))
}

// deleteMovie handles DELETE /api/movies/{id}.
func (s *Server) deleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := s.movies.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]int64{"deletedCount": 1}, "Movie deleted successfully")
}

// batchDeleteRequest is the DELETE /api/movies body: a filter with the
// id list to remove.
type batchDeleteRequest struct {
	Filter *batchFilter `json:"filter"`
}

// deleteMoviesBatch handles DELETE /api/movies.
func (s *Server) deleteMoviesBatch(w http.ResponseWriter, r *http.Request) {
	var req batchDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Filter == nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Filter object is required and cannot be empty.")
		return
	}

	deleted, err := s.batch.DeleteMany(r.Context(), req.Filter.ID.In)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]int64{"deletedCount": deleted},
		fmt.Sprintf("Delete operation completed. Removed %d movies.", deleted))
}

// findAndDeleteMovie handles DELETE /api/movies/{id}/find-and-delete.
func (s *Server) findAndDeleteMovie(w http.ResponseWriter, r *http.Request) {
	m, err := s.movies.FindAndDelete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, m, "Movie found and deleted successfully")
}

// listGenres handles GET /api/movies/genres.
func (s *Server) listGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.movies.Genres(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if genres == nil {
		genres = []string{}
	}
	writeSuccess(w, http.StatusOK, genres, fmt.Sprintf("Found %d genres.", len(genres)))
}

// searchMovies handles GET /api/movies/search.
func (s *Server) searchMovies(w http.ResponseWriter, r *http.Request) {
	p, err := bindSearchParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	req, err := searchRequestFromParams(p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	movies, total, err := s.search.Text(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if movies == nil {
		movies = []domain.Movie{}
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"movies":     movies,
		"totalCount": total,
	}, fmt.Sprintf("Found %d movies matching the search criteria.", total))
}

// vectorSearchMovies handles GET /api/movies/vector-search.
func (s *Server) vectorSearchMovies(w http.ResponseWriter, r *http.Request) {
	p, err := bindVectorSearchParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	req, err := domsearch.NewVectorRequest(p.Q, derefInt(p.Limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	hits, err := s.search.Vector(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if hits == nil {
		hits = []domain.ScoredMovie{}
	}

	writeSuccess(w, http.StatusOK, hits, fmt.Sprintf("Found %d similar movies.", len(hits)))
}

// reportByComments handles GET /api/movies/aggregations/reportingByComments.
func (s *Server) reportByComments(w http.ResponseWriter, r *http.Request) {
	p, err := bindReportParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	rows, err := s.reports.ByComments(r.Context(), derefStr(p.MovieID), derefInt(p.Limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if rows == nil {
		rows = []domain.MovieComments{}
	}
	writeSuccess(w, http.StatusOK, rows, fmt.Sprintf("Found %d movies with recent comments", len(rows)))
}

// reportByYear handles GET /api/movies/aggregations/reportingByYear.
func (s *Server) reportByYear(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.ByYear(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if rows == nil {
		rows = []domain.YearStats{}
	}
	writeSuccess(w, http.StatusOK, rows, fmt.Sprintf("Aggregated statistics for %d years", len(rows)))
}

// reportByDirectors handles GET /api/movies/aggregations/reportingByDirectors.
func (s *Server) reportByDirectors(w http.ResponseWriter, r *http.Request) {
	p, err := bindReportParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	rows, err := s.reports.ByDirectors(r.Context(), derefInt(p.Limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if rows == nil {
		rows = []domain.DirectorStats{}
	}
	writeSuccess(w, http.StatusOK, rows, fmt.Sprintf("Found %d directors with most movies", len(rows)))
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// metricsEndpoint handles GET /metrics.
func (s *Server) metricsEndpoint(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func listFilterParams(p listParams) filter.Params {
	return filter.Params{
		Query:     derefStr(p.Q),
		Title:     derefStr(p.Title),
		Genre:     derefStr(p.Genre),
		Year:      p.Year,
		MinRating: p.MinRating,
		MaxRating: p.MaxRating,
		SortBy:    derefStr(p.SortBy),
		SortOrder: derefStr(p.SortOrder),
	}
}

func searchRequestFromParams(p searchParams) (domsearch.Request, error) {
	cursor, err := page.NewCursor(derefInt(p.Limit), derefInt(p.Skip))
	if err != nil {
		return domsearch.Request{}, err
	}
	return domsearch.NewRequest(
		derefStr(p.Plot),
		derefStr(p.Fullplot),
		derefStr(p.Directors),
		derefStr(p.Writers),
		derefStr(p.Cast),
		domsearch.Operator(derefStr(p.SearchOperator)),
		cursor,
	)
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrInvalidID,
		domain.ErrEmptyBatch,
		domain.ErrValidation,
		domain.ErrEmbeddingUnavailable,
		domain.ErrEmbeddingAuth,
		domain.ErrEmbeddingRateLimited,
		domain.ErrEmbeddingProvider,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
