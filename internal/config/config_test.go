package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 1, cfg.Columns.WindowStart)
	assert.Equal(t, 23, cfg.Columns.WindowEnd)
	assert.Equal(t, "FFFFCC", cfg.Highlight.Updated)
	assert.True(t, cfg.History.Enabled)
	assert.Contains(t, cfg.Upload.Extensions, ".xlsx")
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  port: 9000
paths:
  master_bom: /srv/bom/master.xlsx
columns:
  window_start: 3
  window_end: 10
  default_project: FORD_J74_V710_B2_PP_YOTK
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/srv/bom/master.xlsx", cfg.Paths.MasterBOM)
	assert.Equal(t, 3, cfg.Columns.WindowStart)
	assert.Equal(t, "FORD_J74_V710_B2_PP_YOTK", cfg.Columns.DefaultProject)

	// Untouched sections keep defaults.
	assert.Equal(t, "data/uploads", cfg.Paths.UploadDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("MASTER_BOM_PATH", "/tmp/master.xlsx")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "/tmp/master.xlsx", cfg.Paths.MasterBOM)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_Rejections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Columns.WindowEnd = 1
	cfg.Columns.WindowStart = 5
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Upload.MaxSizeMB = 0
	assert.Error(t, cfg.Validate())
}

func TestResolveRelativePath(t *testing.T) {
	assert.Equal(t, "/abs/file.db", ResolveRelativePath("/etc/crossbom/config.yaml", "/abs/file.db"))
	assert.Equal(t, "/etc/crossbom/data/file.db", ResolveRelativePath("/etc/crossbom/config.yaml", "data/file.db"))
}
