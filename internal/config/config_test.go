package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_TIMEOUT", "BQ_PROJECT_ID", "BQ_DATASET", "DATA_BACKEND"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("GeminiModel = %q, want gemini-1.5-flash", cfg.GeminiModel)
	}
	if cfg.GeminiTimeout != 20*time.Second {
		t.Errorf("GeminiTimeout = %v, want 20s", cfg.GeminiTimeout)
	}
	if cfg.BigQueryDataset != "finance" {
		t.Errorf("BigQueryDataset = %q, want finance", cfg.BigQueryDataset)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q, want memory", cfg.DataBackend)
	}
	if cfg.AIEnabled() {
		t.Error("AIEnabled() = true without an API key")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("DATA_BACKEND", "bigquery")
	t.Setenv("BQ_PROJECT_ID", "my-project")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if !cfg.AIEnabled() {
		t.Error("AIEnabled() = false with an API key set")
	}
	if cfg.GeminiTimeout != 5*time.Second {
		t.Errorf("GeminiTimeout = %v, want 5s", cfg.GeminiTimeout)
	}
	if cfg.DataBackend != "bigquery" {
		t.Errorf("DataBackend = %q, want bigquery", cfg.DataBackend)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:          "8080",
			GeminiTimeout: 20 * time.Second,
			DataBackend:   "memory",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid memory config", func(c *Config) {}, false},
		{"valid bigquery config", func(c *Config) {
			c.DataBackend = "bigquery"
			c.BigQueryProject = "my-project"
		}, false},
		{"non-numeric port", func(c *Config) { c.Port = "abc" }, true},
		{"port out of range", func(c *Config) { c.Port = "70000" }, true},
		{"unknown backend", func(c *Config) { c.DataBackend = "postgres" }, true},
		{"bigquery without project", func(c *Config) { c.DataBackend = "bigquery" }, true},
		{"non-positive timeout", func(c *Config) { c.GeminiTimeout = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
