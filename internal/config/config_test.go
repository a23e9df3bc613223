package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PRAGATI_SHEET_SPREADSHEET_ID", "1AbCdEfGhIjKlMnOp")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Sheet.FetchTimeout)
	assert.Equal(t, "0", cfg.Sheet.GID)
	assert.Equal(t, "A:V", cfg.Sheet.Range)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PRAGATI_SHEET_SPREADSHEET_ID", "sheet-id")
	t.Setenv("PRAGATI_SERVER_PORT", "9090")
	t.Setenv("PRAGATI_SHEET_GID", "12345")
	t.Setenv("PRAGATI_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "12345", cfg.Sheet.GID)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRequiresSource(t *testing.T) {
	// No spreadsheet id, no export URL.
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spreadsheet_id")
}

func TestLoadRejectsInvalidLevel(t *testing.T) {
	t.Setenv("PRAGATI_SHEET_SPREADSHEET_ID", "sheet-id")
	t.Setenv("PRAGATI_LOGGING_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
}

func TestSourceURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  SheetConfig
		want string
	}{
		{
			name: "derived from id and gid",
			cfg:  SheetConfig{SpreadsheetID: "abc", GID: "7"},
			want: "https://docs.google.com/spreadsheets/d/abc/export?format=csv&gid=7",
		},
		{
			name: "explicit export url wins",
			cfg:  SheetConfig{SpreadsheetID: "abc", GID: "7", ExportURL: "https://example.com/data.csv"},
			want: "https://example.com/data.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.SourceURL())
		})
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
sheet:
  spreadsheet_id: file-sheet-id
  gid: "42"
server:
  port: 7070
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("PRAGATI_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file-sheet-id", cfg.Sheet.SpreadsheetID)
	assert.Equal(t, "42", cfg.Sheet.GID)
	assert.Equal(t, 7070, cfg.Server.Port)
}
