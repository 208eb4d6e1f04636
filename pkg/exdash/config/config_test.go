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

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Load.FullSheet)
	assert.False(t, cfg.Load.UsePrintArea)
	assert.Equal(t, "NULL", cfg.Table.NullMarker)
	assert.Equal(t, "Serial Number", cfg.Table.SerialColumn)
	assert.Equal(t, 1024, cfg.Render.Width)
	assert.Equal(t, 640, cfg.Render.Height)
	assert.Equal(t, "png", cfg.Render.Format)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exdash.yaml")
	yamlContent := `
log:
  level: debug
table:
  null_marker: "N/A"
render:
  width: 800
  format: svg
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	t.Setenv("EXDASH_CHART_WIDTH", "1200")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "N/A", cfg.Table.NullMarker)
	assert.Equal(t, 1200, cfg.Render.Width, "env must override YAML")
	assert.Equal(t, "svg", cfg.Render.Format)
	assert.Equal(t, 640, cfg.Render.Height)
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("EXDASH_NULL_MARKER", "-")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "-", cfg.Table.NullMarker)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"log level", map[string]string{"EXDASH_LOG_LEVEL": "loud"}},
		{"log format", map[string]string{"EXDASH_LOG_FORMAT": "xml"}},
		{"chart format", map[string]string{"EXDASH_CHART_FORMAT": "gif"}},
		{"chart size", map[string]string{"EXDASH_CHART_HEIGHT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
