// Package config provides configuration management for the points
// forecast engine.
package config

// Config represents the complete application configuration
type Config struct {
	App     AppConfig      `mapstructure:"app" validate:"required"`
	Engine  EngineConfig   `mapstructure:"engine" validate:"required"`
	API     APIConfig      `mapstructure:"api" validate:"required"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
	Seasons []SeasonConfig `mapstructure:"seasons" validate:"required,min=1,dive"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// EngineConfig tunes the rating and forecast calculations
type EngineConfig struct {
	RatingK         float64 `mapstructure:"rating_k" validate:"required,gt=0"`
	HomeAdvantage   float64 `mapstructure:"home_advantage" validate:"gte=0"`
	BookmakerMargin float64 `mapstructure:"bookmaker_margin" validate:"gte=0,lt=1"`
	TierWidth       int     `mapstructure:"tier_width" validate:"required,oneof=4 5"`
	ForecastRounds  int     `mapstructure:"forecast_rounds" validate:"required,gt=0"`
	Workers         int     `mapstructure:"workers" validate:"required,gt=0"`
}

// APIConfig represents the fantasy data API configuration
type APIConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts     int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	Burst             int     `mapstructure:"burst" validate:"required,gt=0"`
	CacheTTLSeconds   int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents Prometheus exposition configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// SeasonConfig points at one season of historical match data
type SeasonConfig struct {
	Tag       string `mapstructure:"tag" validate:"required,seasontag"`
	TierWidth int    `mapstructure:"tier_width" validate:"required,oneof=4 5"`
	DataFile  string `mapstructure:"data_file" validate:"required"`
}

// IsProduction returns true when running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true when running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
