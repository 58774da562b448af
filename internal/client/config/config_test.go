package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"sentinel"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)
	cfg := LoadConfig()
	require.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	require.Equal(t, 120*time.Second, cfg.PipelineTimeout)
	require.Equal(t, "sentinel.db", cfg.DatabasePath)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	resetArgs(t, "-a", "http://api.example.com", "-t", "30", "-d", "other.db")
	cfg := LoadConfig()
	require.Equal(t, "http://api.example.com", cfg.APIBaseURL)
	require.Equal(t, 30*time.Second, cfg.PipelineTimeout)
	require.Equal(t, "other.db", cfg.DatabasePath)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv(EnvAPIBaseURL, "http://env.example.com")
	t.Setenv(EnvPipelineTimeout, "45s")

	cfg := LoadConfig()
	require.Equal(t, "http://env.example.com", cfg.APIBaseURL)
	require.Equal(t, 45*time.Second, cfg.PipelineTimeout)
}

func TestLoadConfig_FlagsBeatEnv(t *testing.T) {
	resetArgs(t, "-a", "http://flag.example.com")
	t.Setenv(EnvAPIBaseURL, "http://env.example.com")

	cfg := LoadConfig()
	require.Equal(t, "http://flag.example.com", cfg.APIBaseURL)
}

func TestLoadConfig_JsonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_base_url": "http://json.example.com",
		"pipeline_timeout": "90s"
	}`), 0o660))

	resetArgs(t, "-c", path)
	cfg := LoadConfig()
	require.Equal(t, "http://json.example.com", cfg.APIBaseURL)
	require.Equal(t, 90*time.Second, cfg.PipelineTimeout)
	// Field absent from the file keeps its default.
	require.Equal(t, "sentinel.db", cfg.DatabasePath)
}

func TestLoadConfig_JsonThenFlagPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_base_url": "http://json.example.com"}`), 0o660))

	resetArgs(t, "-c", path, "-a", "http://flag.example.com")
	cfg := LoadConfig()
	require.Equal(t, "http://flag.example.com", cfg.APIBaseURL)
}
