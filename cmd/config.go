package cmd

import (
	"fmt"
	"os"
	"time"
)

// Config carries the runtime settings of the application.
type Config struct {
	LogLevel         string
	StaleOrderMaxAge time.Duration
}

// LoadConfig reads the configuration from environment variables, applying
// defaults for anything unset.
func LoadConfig() (Config, error) {
	config := Config{
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		StaleOrderMaxAge: 24 * time.Hour,
	}

	if raw := os.Getenv("STALE_ORDER_MAX_AGE"); raw != "" {
		maxAge, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid STALE_ORDER_MAX_AGE %q: %w", raw, err)
		}
		if maxAge <= 0 {
			return Config{}, fmt.Errorf("STALE_ORDER_MAX_AGE must be positive, got %q", raw)
		}
		config.StaleOrderMaxAge = maxAge
	}

	return config, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
