package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEnvironmentVariables_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := ProcessEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, &Config{
		DBPath:    "data/expense-tracker.db",
		HTTPPort:  "9446",
		LogLevel:  "info",
		QueueSize: 1000,
	}, cfg)
}

func TestProcessEnvironmentVariables_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRACKER_DB_PATH", "/tmp/other.db")
	t.Setenv("TRACKER_HTTP_PORT", "8080")
	t.Setenv("TRACKER_QUEUE_SIZE", "16")

	cfg, err := ProcessEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 16, cfg.QueueSize)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestProcessEnvironmentVariables_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nhttp_port: \"7000\"\n"), 0o600))
	t.Setenv("TRACKER_CONFIG_FILE", path)
	t.Setenv("TRACKER_HTTP_PORT", "7001")

	cfg, err := ProcessEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "7001", cfg.HTTPPort)
}

func TestProcessEnvironmentVariables_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRACKER_LOG_LEVEL=warn\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TRACKER_LOG_LEVEL") })

	cfg, err := ProcessEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestProcessEnvironmentVariables_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRACKER_CONFIG_FILE", "/does/not/exist.yaml")

	_, err := ProcessEnvironmentVariables()

	assert.Error(t, err)
}

func TestProcessEnvironmentVariables_BadQueueSize(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRACKER_QUEUE_SIZE", "0")

	_, err := ProcessEnvironmentVariables()

	assert.Error(t, err)
}
