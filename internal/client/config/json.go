package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sentinelai/sentinel-cli/internal/flagx"
	"github.com/sentinelai/sentinel-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be written either as a string like
// "120s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL      string         `json:"api_base_url"`
	PipelineTimeout timex.Duration `json:"pipeline_timeout"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	DatabasePath    string         `json:"database_path"`
}

// parseJson overlays Config with values loaded from a JSON file named via
// the -c/-config flags. Missing flag means no JSON is loaded. Empty fields
// in the file leave the current value untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.PipelineTimeout.Duration != 0 {
		cfg.PipelineTimeout = time.Duration(jc.PipelineTimeout.Duration)
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
