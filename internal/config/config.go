package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment
// variables.
type Config struct {
	// Stats API
	StatsBaseURL   string `envconfig:"NBA_STATS_BASE_URL" default:"https://stats.nba.com"`
	DataBaseURL    string `envconfig:"NBA_DATA_BASE_URL" default:"https://data.nba.com"`
	RequestTimeout int    `envconfig:"NBA_REQUEST_TIMEOUT_SECONDS" default:"30"`

	// Ingestion scope
	LeagueID string `envconfig:"NBA_LEAGUE_ID" default:"00"`
	Season   string `envconfig:"NBA_SEASON" default:"2024-25"`

	// Database
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"nbadb"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`

	// Redis cache
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Cache TTL in seconds
	CacheTTLPlayerCards int `envconfig:"CACHE_TTL_PLAYER_CARDS" default:"86400"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Worker behavior
	EnableScheduler      bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	NightlyUpdateCron    string `envconfig:"NIGHTLY_UPDATE_CRON" default:"0 2 * * *"`
	InitialUpdateEnabled bool   `envconfig:"INITIAL_UPDATE_ENABLED" default:"false"`

	// Metrics
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// MustLoad loads configuration from environment variables, panicking on
// failure. A .env file is loaded first if present.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	return &cfg
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Season == "" {
		return fmt.Errorf("NBA_SEASON is required")
	}
	if c.LeagueID == "" {
		return fmt.Errorf("NBA_LEAGUE_ID is required")
	}
	return nil
}

// DatabaseDSN returns the PostgreSQL connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// IsProduction returns true when running in production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DefaultFanDuelWeights is the FanDuel scoring table.
func DefaultFanDuelWeights() map[string]float64 {
	return map[string]float64{
		"pts": 1,
		"reb": 1.2,
		"ast": 1.5,
		"blk": 2,
		"stl": 2,
		"tov": -1,
	}
}

// DefaultDraftKingsWeights is the DraftKings scoring table.
func DefaultDraftKingsWeights() map[string]float64 {
	return map[string]float64{
		"pts":  1,
		"fg3m": 0.5,
		"reb":  1.25,
		"ast":  1.5,
		"stl":  2,
		"blk":  2,
		"tov":  -0.5,
		"dd":   1.5,
		"td":   3,
	}
}
