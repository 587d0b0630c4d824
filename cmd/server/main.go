// Package main is the entry point for the missing-persons portal.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/klauspost/compress/gzhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"desaparecidos/internal/domain/registry"
	"desaparecidos/internal/domain/submission"
	"desaparecidos/internal/infrastructure/abitus"
	v1 "desaparecidos/internal/infrastructure/http/v1"
	"desaparecidos/pkg/logger"
)

func main() {
	// A missing .env is normal in containers.
	_ = godotenv.Load()

	cfg := loadConfig()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Infow("starting desaparecidos portal", "env", cfg.Env, "version", cfg.Version)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// --- Registry API client ---
	client, err := abitus.New(cfg.Abitus, log)
	if err != nil {
		log.Fatalw("invalid registry api configuration", "error", err)
	}
	log.Infow("registry api client configured",
		"base_url", cfg.Abitus.BaseURL,
		"timeout", cfg.Abitus.Timeout,
		"max_retries", cfg.Abitus.MaxRetries,
		"rate_interval", cfg.Abitus.RateInterval,
	)

	// --- Services ---
	registryService := registry.NewService(client, cfg.Registry)
	submissionService := submission.NewService(cfg.Limits)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Registry:       registryService,
		Submissions:    submissionService,
		Upstream:       client,
		Logger:         log,
		MaxUploadBytes: cfg.MaxBodySize,
		Version:        cfg.Version,
		Debug:          cfg.development(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           gzhttp.GzipHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
