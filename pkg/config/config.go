package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string `mapstructure:"ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// External APIs
	StatsBaseURL            string        `mapstructure:"STATS_BASE_URL"`
	HeadshotBaseURL         string        `mapstructure:"HEADSHOT_BASE_URL"`
	ExternalAPITimeout      time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
	StatsRateLimit          float64       `mapstructure:"STATS_RATE_LIMIT"` // requests per second
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`
	CircuitBreakerTimeout   time.Duration `mapstructure:"CIRCUIT_BREAKER_TIMEOUT"`

	// Reference data
	PlayerIDCSV    string `mapstructure:"PLAYER_ID_CSV"`
	ShotPlayersCSV string `mapstructure:"SHOT_PLAYERS_CSV"`

	// Output
	OutputDir string `mapstructure:"OUTPUT_DIR"`

	// Response cache, disabled when RedisURL is empty
	RedisURL string        `mapstructure:"REDIS_URL"`
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":  "LOG_LEVEL",
	"output-dir": "OUTPUT_DIR",
	"redis-url":  "REDIS_URL",
	"player-csv": "PLAYER_ID_CSV",
}

// LoadConfig reads defaults, an optional .env file, SHOTCHART_* environment
// variables and any bound flags, in increasing order of precedence.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("STATS_BASE_URL", "https://stats.nba.com/stats")
	v.SetDefault("HEADSHOT_BASE_URL", "https://stats.nba.com/media/players/230x185")
	v.SetDefault("EXTERNAL_API_TIMEOUT", "30s")
	v.SetDefault("STATS_RATE_LIMIT", 1.0)
	v.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	v.SetDefault("CIRCUIT_BREAKER_TIMEOUT", "60s")
	v.SetDefault("PLAYER_ID_CSV", "data/player_id.csv")
	v.SetDefault("SHOT_PLAYERS_CSV", "data/players2001.csv")
	v.SetDefault("OUTPUT_DIR", ".")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", "24h")

	v.SetEnvPrefix("SHOTCHART")
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("unable to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.StatsRateLimit <= 0 {
		return nil, fmt.Errorf("STATS_RATE_LIMIT must be positive, got %v", config.StatsRateLimit)
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
