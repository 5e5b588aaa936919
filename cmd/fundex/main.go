package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fundex/internal/config"
	"github.com/kailas-cloud/fundex/internal/db"
	dbFile "github.com/kailas-cloud/fundex/internal/db/file"
	dbRedis "github.com/kailas-cloud/fundex/internal/db/redis"
	logpkg "github.com/kailas-cloud/fundex/internal/logger"
	"github.com/kailas-cloud/fundex/internal/metrics"
	fundrepo "github.com/kailas-cloud/fundex/internal/repository/fund"
	chiTransport "github.com/kailas-cloud/fundex/internal/transport/chi"
	funduc "github.com/kailas-cloud/fundex/internal/usecase/fund"
	healthuc "github.com/kailas-cloud/fundex/internal/usecase/health"
	"github.com/kailas-cloud/fundex/internal/version"
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

	logger.Info("Starting fundex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("storage_key", cfg.Storage.Key),
	)

	store, fileStore, err := openStore(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to create storage", zap.Error(err))
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Storage.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Storage not ready", zap.Error(err))
	}
	logger.Info("Connected to storage")

	metrics.RegisterStoreMetrics()

	repo := fundrepo.New(store, cfg.Storage.Key)
	fundSvc := funduc.New(repo)
	healthSvc := healthuc.New(store, fundSvc)

	// Backfill ids once at startup so the first read does not pay for it.
	bootCtx := logpkg.ContextWithLogger(ctx, logger)
	if n, err := repo.EnsureIDs(bootCtx); err != nil {
		logger.Error("Initial id backfill failed", zap.Error(err))
	} else {
		logger.Info("Fund collection loaded", zap.Int("backfilled_ids", n))
	}

	if cfg.Storage.Watch {
		if fileStore == nil {
			logger.Warn("storage.watch is ignored by the redis driver")
		} else {
			go watchDataFile(bootCtx, fileStore, cfg.Storage.Key, repo, logger)
		}
	}

	server := chiTransport.NewServer(fundSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	}))
	r.Use(chiMiddleware.RequestSize(cfg.HTTP.MaxBodyBytes))
	r.Use(chiTransport.RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	r.Use(metrics.Middleware())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "bad_request", "method not allowed")
	})
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore creates the storage backend selected by cfg.Driver. The file store
// is also returned on its own so the caller can watch it.
func openStore(cfg config.StorageConfig) (db.Store, *dbFile.Store, error) {
	switch cfg.Driver {
	case config.DriverFile:
		s, err := dbFile.NewStore(dbFile.Config{Dir: cfg.DataDir})
		if err != nil {
			return nil, nil, fmt.Errorf("file store: %w", err)
		}
		return s, s, nil
	case config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Addrs,
			Password:  cfg.Password,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("redis store: %w", err)
		}
		return s, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// watchDataFile backfills ids whenever the data file is edited outside the API.
// Writes made by the backfill itself trigger one more, no-op, pass.
func watchDataFile(ctx context.Context, s *dbFile.Store, key string, repo *fundrepo.Repo, logger *zap.Logger) {
	logger.Info("Watching data file", zap.String("dir", s.Dir()), zap.String("key", key))
	err := s.Watch(ctx, key, func() {
		n, err := repo.EnsureIDs(ctx)
		if err != nil {
			logger.Warn("Backfill after data file change failed", zap.Error(err))
			return
		}
		if n > 0 {
			logger.Info("Data file changed, ids backfilled", zap.Int("backfilled_ids", n))
		}
	})
	if err != nil {
		logger.Error("Data file watcher stopped", zap.Error(err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					writeJSONError(w, http.StatusInternalServerError, "internal_error", "internal error")
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
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			ctx := logpkg.WithRequestID(r.Context(), logger, requestID)
			reqLogger := logpkg.FromContext(ctx)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
