package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, PlaceholderAPIKey, cfg.Anthropic.Key)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.VisionModel)
	assert.Equal(t, int64(1024), cfg.Anthropic.MaxTokens)
	assert.Equal(t, "https://s.jina.ai", cfg.Jina.BaseURL)
	assert.Equal(t, "file", cfg.Profile.Driver)
	assert.Equal(t, "user_db.json", cfg.Profile.Path)
	assert.Equal(t, "default", cfg.Profile.DefaultUser)
	assert.InDelta(t, 14.0, cfg.Loan.AnnualRatePercent, 0.001)
	assert.Equal(t, 12, cfg.Loan.TermMonths)
	assert.Equal(t, "price in india buy online amazon flipkart", cfg.Search.QuerySuffix)
	assert.Equal(t, 2, cfg.Search.MaxResults)
	assert.Equal(t, "reality-lens.db", cfg.Store.Path)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
profile:
  driver: postgres
  database_url: postgres://localhost/finsync
loan:
  annual_rate_percent: 12.5
  term_months: 24
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Profile.Driver)
	assert.Equal(t, "postgres://localhost/finsync", cfg.Profile.DatabaseURL)
	assert.InDelta(t, 12.5, cfg.Loan.AnnualRatePercent, 0.001)
	assert.Equal(t, 24, cfg.Loan.TermMonths)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}

func TestInitLogger_Console(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
