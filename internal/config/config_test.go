package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfigDirs(t *testing.T) string {
	t.Helper()

	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("HOME", tmp)
	return tmp
}

func TestLoadAndGet(t *testing.T) {
	setupConfigDirs(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	assert.Equal(t, DefaultAPIBaseURL, Get("api_base_url", ""))
	assert.Equal(t, 10, GetInt("page_size", 0))
	assert.Equal(t, 30*time.Second, GetDuration("request_timeout", time.Second))
	assert.True(t, GetBool("history_enabled", false))
	assert.False(t, IsExplicit("api_base_url"))
}

func TestLoadWritesSampleConfig(t *testing.T) {
	tmp := setupConfigDirs(t)
	Load()

	data, err := os.ReadFile(filepath.Join(tmp, "config", "dogfinder", "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# dogfinder configuration")
	assert.Contains(t, string(data), "api_base_url")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	tmp := setupConfigDirs(t)
	path := filepath.Join(tmp, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("page_size = 25\napi_base_url = \"https://file.example\"\n"), 0o644))
	t.Setenv("DOGFINDER_CONFIG_PATH", path)
	t.Setenv("DOGFINDER_API_BASE_URL", "https://env.example/")
	Load()

	assert.Equal(t, 25, GetInt("page_size", 0))
	assert.Equal(t, "https://env.example", APIBaseURL())
	assert.True(t, IsExplicit("api_base_url"))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	setupConfigDirs(t)
	t.Setenv("DOGFINDER_PAGE_SIZE", "500")
	t.Setenv("DOGFINDER_API_BASE_URL", "not a url")
	t.Setenv("DOGFINDER_LATITUDE", "123")
	t.Setenv("DOGFINDER_HISTORY_ENABLED", "maybe")
	Load()

	assert.Equal(t, 10, GetInt("page_size", 0))
	assert.Equal(t, DefaultAPIBaseURL, Get("api_base_url", ""))
	_, ok := GetFloat("latitude")
	assert.False(t, ok)
	assert.True(t, GetBool("history_enabled", false))
}

func TestCoordinatesFromEnv(t *testing.T) {
	setupConfigDirs(t)
	t.Setenv("DOGFINDER_LATITUDE", "45.52")
	t.Setenv("DOGFINDER_LONGITUDE", "-122.68")
	Load()

	lat, ok := GetFloat("latitude")
	require.True(t, ok)
	assert.InDelta(t, 45.52, lat, 1e-9)
	lon, ok := GetFloat("longitude")
	require.True(t, ok)
	assert.InDelta(t, -122.68, lon, 1e-9)
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator Validator
		value     string
		want      string
	}{
		{"positive int ok", PositiveIntValidator(), "5", "5"},
		{"positive int zero", PositiveIntValidator(), "0", "d"},
		{"bounded ok", BoundedIntValidator(1, 100), "100", "100"},
		{"bounded over", BoundedIntValidator(1, 100), "101", "d"},
		{"enum normalizes", EnumValidator(map[string]bool{"info": true}), "INFO", "info"},
		{"enum invalid", EnumValidator(map[string]bool{"info": true}), "loud", "d"},
		{"bool yes", BoolValidator(), "yes", "true"},
		{"bool off", BoolValidator(), "off", "false"},
		{"url trims slash", URLValidator(), "http://localhost:8080/", "http://localhost:8080"},
		{"url relative", URLValidator(), "/dogs", "d"},
		{"float empty", FloatRangeValidator(-90, 90), "", "d"},
		{"float ok", FloatRangeValidator(-90, 90), "-45.5", "-45.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.validator("key", tt.value, "d")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
