package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Env          string
	LogLevel     string
	DBPath       string
	DBDriver     string
	StoreTimeout time.Duration
	ViewportTTL  time.Duration
	CORSOrigins  string
}

var AppConfig *Config

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        GetEnv("PORT", "3000"),
		Env:         GetEnv("ENV", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		DBPath:      GetEnv("DB_PATH", "./data/sticky-board.db"),
		DBDriver:    GetEnv("DB_DRIVER", "sqlite3"),
		CORSOrigins: GetEnv("CORS_ORIGINS", "*"),
	}

	var err error
	if cfg.StoreTimeout, err = GetDuration("STORE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.ViewportTTL, err = GetDuration("VIEWPORT_TTL", 12*time.Hour); err != nil {
		return nil, err
	}

	switch cfg.DBDriver {
	case "sqlite3", "sqlite":
	default:
		return nil, fmt.Errorf("DB_DRIVER must be sqlite3 or sqlite, got %q", cfg.DBDriver)
	}

	AppConfig = cfg
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
