package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service configuration, loaded from the environment.
type Config struct {
	// HTTP server
	Port string

	// Gemini
	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration

	// BigQuery
	BigQueryProject string
	BigQueryDataset string

	// Backend selection: "memory" or "bigquery"
	DataBackend string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiTimeout: getEnvDuration("GEMINI_TIMEOUT", 20*time.Second),

		BigQueryProject: getEnv("BQ_PROJECT_ID", ""),
		BigQueryDataset: getEnv("BQ_DATASET", "finance"),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
	}
}

// AIEnabled reports whether the AI parse/forecast path is configured.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory":
	case "bigquery":
		if c.BigQueryProject == "" {
			errs = append(errs, "BQ_PROJECT_ID is required when DATA_BACKEND=bigquery")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend %q: must be one of [memory bigquery]", c.DataBackend))
	}

	if c.GeminiTimeout <= 0 {
		errs = append(errs, "GEMINI_TIMEOUT must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
