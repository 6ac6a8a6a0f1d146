package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ezerfernandes/codetabs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(config.DefaultDir(), "state.json"), cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "vs", cfg.Render.Style)
	assert.Empty(t, cfg.Render.TermStyle)
	assert.Equal(t, 80, cfg.Render.Width)
}

func TestLoadRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codetabs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  style: monokai\n  term_style: notty\n  width: 40\n"), 0o600))

	t.Setenv("CODETABS_RENDER_WIDTH", "60")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "monokai", cfg.Render.Style)
	assert.Equal(t, "notty", cfg.Render.TermStyle)
	assert.Equal(t, 60, cfg.Render.Width)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9000\"\nstorage:\n  driver: sqlite\n  path: /tmp/x.db\n"), 0o600))

	t.Setenv("CODETABS_LOGGING_LEVEL", "debug")
	t.Setenv("CODETABS_STORAGE_DRIVER", "memory")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
