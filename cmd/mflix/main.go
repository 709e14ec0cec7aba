package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mflix/internal/config"
	dbMongo "github.com/kailas-cloud/mflix/internal/db/mongo"
	dbRedis "github.com/kailas-cloud/mflix/internal/db/redis"
	"github.com/kailas-cloud/mflix/internal/domain"
	logpkg "github.com/kailas-cloud/mflix/internal/logger"
	"github.com/kailas-cloud/mflix/internal/metrics"
	"github.com/kailas-cloud/mflix/internal/repository/embcache"
	moviesrepo "github.com/kailas-cloud/mflix/internal/repository/movies"
	reportsrepo "github.com/kailas-cloud/mflix/internal/repository/reports"
	searchrepo "github.com/kailas-cloud/mflix/internal/repository/search"
	chiTransport "github.com/kailas-cloud/mflix/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/mflix/internal/transport/openai"
	batchuc "github.com/kailas-cloud/mflix/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/mflix/internal/usecase/health"
	moviesuc "github.com/kailas-cloud/mflix/internal/usecase/movies"
	reportsuc "github.com/kailas-cloud/mflix/internal/usecase/reports"
	searchuc "github.com/kailas-cloud/mflix/internal/usecase/search"
	"github.com/kailas-cloud/mflix/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting mflix API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("mongo_db", cfg.Mongo.Database),
	)

	ctx := context.Background()

	// Connect to MongoDB and wait for readiness
	mongoClient, err := dbMongo.Connect(ctx, dbMongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() { _ = mongoClient.Close(ctx) }()

	if err := mongoClient.WaitForReady(ctx, time.Duration(cfg.Mongo.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("MongoDB not ready", zap.Error(err))
	}
	logger.Info("Connected to MongoDB")

	// Optional Redis store for the embedding cache
	var cache *dbRedis.Store
	if len(cfg.Cache.Addrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()
		logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Register embedding metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()

	// Build embedder chain: OpenAI-compatible provider wrapped in a cache.
	// A missing API key leaves the embedder nil and vector search reports
	// the provider as unconfigured.
	var embedder domain.Embedder
	var embHealth healthuc.EmbeddingChecker
	if cfg.Embedding.APIKey != "" {
		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     logger,
		})
		embedder = base
		embHealth = base
		if cache != nil {
			embedder = embcache.New(
				base, cache,
				time.Duration(cfg.Cache.TTLSec)*time.Second,
				metrics.EmbeddingCacheTotal, logger,
			)
		}
		logger.Info("Embedder created",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
		)
	}

	// Create repositories
	moviesColl := mongoClient.Collection(dbMongo.MoviesCollection)
	embeddedColl := mongoClient.Collection(dbMongo.EmbeddedMoviesCollection)

	movieRepo := moviesrepo.New(moviesColl)
	searchRepo := searchrepo.New(moviesColl, embeddedColl)
	reportRepo := reportsrepo.New(moviesColl)

	// Create use case services
	movieSvc := moviesuc.New(movieRepo)
	batchSvc := batchuc.New(movieRepo)
	searchSvc := searchuc.New(searchRepo, embedder)
	reportSvc := reportsuc.New(reportRepo)

	// Health service: cache and embedding are optional components
	var cachePinger healthuc.CachePinger
	if cache != nil {
		cachePinger = cache
	}
	healthSvc := healthuc.New(mongoClient, cachePinger, embHealth)

	// Create chi server
	server := chiTransport.NewServer(movieSvc, batchSvc, searchSvc, reportSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
