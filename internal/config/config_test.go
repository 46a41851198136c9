package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err, "a missing config file falls back to defaults")

	assert.Equal(t, 8080, cfg.APIPort)
	assert.Equal(t, "100days", cfg.DatabaseName)
	assert.Equal(t, "data/100days.db", cfg.DatabasePath)
	assert.Equal(t, 7*24, cfg.SessionTTLHours)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yml")
	require.NoError(t, os.WriteFile(path, []byte("api_port: 9000\ndatabase_path: /tmp/foo.db\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.APIPort)
	assert.Equal(t, "/tmp/foo.db", cfg.DatabasePath)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/100days_test?sslmode=disable")
	t.Setenv("DATABASE_NAME", "100days_test")
	t.Setenv("PORT", "9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost:5432/100days_test?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, "100days_test", cfg.DatabaseName)
	assert.Equal(t, 9999, cfg.APIPort)
}
