package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
env: dev
http_server:
  address: localhost:8082
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.DisableSeed)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, ":memory:", cfg.Storage.Path)
	assert.Equal(t, "localhost:8082", cfg.HTTPServer.Addr)

	now := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, types.YearRange{Min: 2020, Max: 2029}, cfg.YearRange(now))
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
env: prod
disable_seed: true
storage:
  driver: sqlite
  path: ":memory:"
roster:
  min_year: 2015
  max_year: 2030
http_server:
  address: 0.0.0.0:9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.True(t, cfg.DisableSeed)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, types.YearRange{Min: 2015, Max: 2030}, cfg.YearRange(time.Now()))
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
env: dev
http_server:
  address: localhost:8082
`)
	t.Setenv("HTTP_SERVER_ADDR", "localhost:9999")
	t.Setenv("STORAGE_DRIVER", "sqlite")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9999", cfg.HTTPServer.Addr)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing env", "http_server:\n  address: localhost:8082\n"},
		{"unknown driver", "env: dev\nstorage:\n  driver: postgres\nhttp_server:\n  address: x\n"},
		{"half a year window", "env: dev\nroster:\n  min_year: 2020\nhttp_server:\n  address: x\n"},
		{"inverted year window", "env: dev\nroster:\n  min_year: 2030\n  max_year: 2020\nhttp_server:\n  address: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "does not exist")
}
