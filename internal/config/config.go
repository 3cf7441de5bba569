// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// LogLevel is the minimum level logged to stderr.
	LogLevel slog.Level

	// Strict makes an invariant violation panic instead of falling back to
	// the unoptimized transfers.
	Strict bool

	// MetricsFile, when set, receives Prometheus metrics in textfile format.
	MetricsFile string

	// Optimizer names the graph optimizer, "greedy" or "pairwise".
	Optimizer string
}

// Load reads the configuration. A .env file in the working directory is
// loaded first if present; variables already set in the environment win.
// A .env file that exists but cannot be read or parsed is an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	strict, err := getEnvBool("SETTLE_STRICT", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		LogLevel:    level,
		Strict:      strict,
		MetricsFile: os.Getenv("SETTLE_METRICS_FILE"),
		Optimizer:   getEnv("SETTLE_OPTIMIZER", "greedy"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, value)
	}
	return b, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: unknown level %q", s)
	}
}
