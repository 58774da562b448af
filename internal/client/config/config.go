// Package config handles configuration for the Sentinel CLI, including
// defaults, JSON overlay, environment variables, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Sentinel CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - PipelineTimeout: client-side deadline for the synchronous detection
//     run (the only call with its own per-request timeout).
//   - RequestTimeout: deadline for every other API call; zero keeps the
//     transport default (no timeout).
//   - DatabasePath: SQLite file persisting the local session state.
//
// Units: timeouts are time.Duration (e.g., 120*time.Second).
type Config struct {
	APIBaseURL      string
	PipelineTimeout time.Duration
	RequestTimeout  time.Duration
	DatabasePath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.PipelineTimeout = 120 * time.Second
	c.RequestTimeout = 0
	c.DatabasePath = "sentinel.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment (including an optional .env
// file), and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
