package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "points-forecast",
			Environment: "development",
			LogLevel:    "info",
		},
		Engine: EngineConfig{
			RatingK:         20,
			BookmakerMargin: 0.05,
			TierWidth:       4,
			ForecastRounds:  1,
			Workers:         4,
		},
		API: APIConfig{
			BaseURL:           "https://fantasy.premierleague.com/api",
			TimeoutSeconds:    30,
			RetryAttempts:     3,
			RequestsPerSecond: 5,
			Burst:             5,
			CacheTTLSeconds:   300,
		},
		Seasons: []SeasonConfig{
			{Tag: "2024-25", TierWidth: 5, DataFile: "data/2024-25.json"},
			{Tag: "2025-26", TierWidth: 4, DataFile: "data/2025-26.json"},
		},
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidateRejectsBadEnvironment(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = "qa"
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.App.LogLevel = "verbose"
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsBadTierWidth(t *testing.T) {
	cfg := validConfig()
	cfg.Engine.TierWidth = 7
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsBadSeasonTag(t *testing.T) {
	cfg := validConfig()
	cfg.Seasons[0].Tag = "2024/25"
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsDuplicateSeasons(t *testing.T) {
	cfg := validConfig()
	cfg.Seasons[1].Tag = cfg.Seasons[0].Tag
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsMarginAtOne(t *testing.T) {
	cfg := validConfig()
	cfg.Engine.BookmakerMargin = 1
	assert.Error(t, Validate(cfg))
}

func TestValidateMetricsNeedAddress(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics.Enabled = true
	assert.Error(t, Validate(cfg))

	cfg.Metrics.Address = ":9090"
	assert.NoError(t, Validate(cfg))
}

func TestValidateRejectsDebugInProduction(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = "production"
	cfg.App.LogLevel = "debug"
	assert.Error(t, Validate(cfg))
}

const testYAML = `
app:
  name: points-forecast
  environment: development
  log_level: ${TEST_LOG_LEVEL}
engine:
  rating_k: 20
  home_advantage: 0
  bookmaker_margin: 0.05
  tier_width: 4
  forecast_rounds: 2
  workers: 8
api:
  base_url: https://fantasy.premierleague.com/api
  timeout_seconds: 30
  retry_attempts: 3
  requests_per_second: 5
  burst: 5
  cache_ttl_seconds: 300
seasons:
  - tag: "2025-26"
    tier_width: 4
    data_file: data/2025-26.json
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testYAML), 0o644))
	return path
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "warn")
	cfg, err := Load(writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, 2, cfg.Engine.ForecastRounds)
	require.Len(t, cfg.Seasons, 1)
	assert.Equal(t, "2025-26", cfg.Seasons[0].Tag)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadWithDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.InDelta(t, 20.0, cfg.Engine.RatingK, 1e-9)
	assert.Equal(t, 4, cfg.Engine.TierWidth)
}
