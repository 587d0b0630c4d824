package main

import (
	"fmt"
	"os"
	"time"

	"desaparecidos/internal/domain/registry"
	"desaparecidos/internal/domain/submission"
	"desaparecidos/internal/infrastructure/abitus"
)

// config is the server configuration read from the environment.
type config struct {
	Port     string
	Env      string
	LogLevel string
	Version  string

	Abitus      abitus.Config
	Registry    registry.ServiceConfig
	Limits      submission.Limits
	MaxBodySize int64

	ShutdownTimeout time.Duration
}

func (c config) development() bool { return c.Env == "development" }

func loadConfig() config {
	defaults := abitus.DefaultConfig()
	limits := submission.DefaultLimits()

	cfg := config{
		Port:     getEnv("APP_PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Version:  getEnv("APP_VERSION", "dev"),

		Abitus: abitus.Config{
			BaseURL:        getEnv("ABITUS_BASE_URL", defaults.BaseURL),
			Timeout:        getEnvDuration("ABITUS_TIMEOUT", defaults.Timeout),
			RateInterval:   getEnvDuration("ABITUS_RATE_INTERVAL", defaults.RateInterval),
			RateBurst:      getEnvInt("ABITUS_RATE_BURST", defaults.RateBurst),
			MaxRetries:     uint(max(0, getEnvInt("ABITUS_MAX_RETRIES", int(defaults.MaxRetries)))),
			MaxElapsed:     getEnvDuration("ABITUS_MAX_ELAPSED", defaults.MaxElapsed),
			InitialBackoff: defaults.InitialBackoff,
		},
		Registry: registry.ServiceConfig{
			PageSize:    getEnvInt("SEARCH_PAGE_SIZE", registry.DefaultPageSize),
			RandomCount: getEnvInt("HOME_RANDOM_COUNT", registry.DefaultServiceConfig().RandomCount),
		},
		Limits: submission.Limits{
			MaxPhotos:     getEnvInt("UPLOAD_MAX_PHOTOS", limits.MaxPhotos),
			MaxPhotoBytes: int64(getEnvInt("UPLOAD_MAX_PHOTO_BYTES", int(limits.MaxPhotoBytes))),
		},
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	// A post carries at most MaxPhotos photos plus the text fields.
	defaultBody := int64(cfg.Limits.MaxPhotos)*cfg.Limits.MaxPhotoBytes + 1<<20
	cfg.MaxBodySize = int64(getEnvInt("UPLOAD_MAX_BYTES", int(defaultBody)))

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
