package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names. A .env file in the working directory is
// loaded first (if present) and never overrides variables already set in
// the process environment.
const (
	EnvAPIBaseURL      = "SENTINEL_API_URL"
	EnvPipelineTimeout = "SENTINEL_PIPELINE_TIMEOUT"
	EnvRequestTimeout  = "SENTINEL_REQUEST_TIMEOUT"
	EnvDatabasePath    = "SENTINEL_DB_PATH"
)

func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvPipelineTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PipelineTimeout = d
		}
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
}
