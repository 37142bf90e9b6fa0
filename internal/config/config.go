package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration, loaded from environment
// variables (optionally seeded from a .env file by the caller).
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     int    `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`
	DBTimeZone string `mapstructure:"DB_TIMEZONE"`

	DBMaxOpenConns       int `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns       int `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMin int `mapstructure:"DB_CONN_MAX_LIFETIME_MIN"`

	// When set, month disabling and day blocking refuse to run while
	// active bookings fall inside the affected range.
	CalendarBlockDestructive bool `mapstructure:"CALENDAR_BLOCK_DESTRUCTIVE"`

	// Loads the demo catalog into an empty database at startup.
	SeedDemoData bool `mapstructure:"SEED_DEMO_DATA"`
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "driveschool")
	viper.SetDefault("DB_PASSWORD", "driveschool")
	viper.SetDefault("DB_NAME", "driveschool_db")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MIN", 30)
	viper.SetDefault("CALENDAR_BLOCK_DESTRUCTIVE", false)
	viper.SetDefault("SEED_DEMO_DATA", false)

	// Viper only binds env vars it has seen; defaults above register
	// every key we read.
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
