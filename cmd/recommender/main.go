// cmd/recommender/main.go
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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bookrec/internal/cache"
	"bookrec/internal/common/config"
	"bookrec/internal/common/database"
	commonhttp "bookrec/internal/common/http"
	"bookrec/internal/common/logger"
	"bookrec/internal/common/observability"
	"bookrec/internal/fetch"
	"bookrec/internal/provider/googlebooks"
	"bookrec/internal/provider/openlibrary"
	"bookrec/internal/recommend"
	"bookrec/internal/scoring"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting recommender...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Assemble the pipeline ---
	store := cache.NewStore(redis, cfg.Cache, log)

	googleBooks := googlebooks.NewAdapter(cfg.Providers.GoogleBooks, log)
	openLibrary := openlibrary.NewAdapter(cfg.Providers.OpenLibrary, cfg.Pipeline, log)

	orch := fetch.NewOrchestrator(googleBooks, openLibrary, store, cfg.Pipeline, log)

	// No embedder is configured by default: similarity degrades to the
	// lexical fallback inside the engine.
	engine := scoring.NewEngine(cfg.Scoring, nil)

	service := recommend.NewService(
		orch,
		recommend.NewFilter(cfg.Pipeline),
		engine,
		recommend.NewSelector(cfg.Diversity),
		recommend.NewFallbackGenerator(orch, cfg.Pipeline, cfg.Diversity, log),
		cfg.Pipeline,
		obs,
		log,
	)
	handler := recommend.NewHandler(service, log)

	// --- HTTP Server ---
	router := chi.NewRouter()
	router.Use(commonhttp.RequestID)
	router.Use(commonhttp.Recoverer(log))
	router.Use(commonhttp.AccessLog(log))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := redis.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "degraded", "redis": err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Mount("/api", handler.Routes())

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Recommender stopped")
}
