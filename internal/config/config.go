package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Addr        string
	DBDriver    string
	DatabaseURL string
	SQLitePath  string
	RedisAddr   string
	JWTSecret   string
	LogLevel    string
	CacheTTL    time.Duration
}

// Load reads configuration from the environment, with a .env file as a
// convenience for local development. SQLite is the default store; setting
// DB_DRIVER=postgres switches to DATABASE_URL.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_driver", DriverSQLite)
	v.SetDefault("sqlite_path", "data/inventory.db")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("jwt_secret", "dev-secret-change-me")
	v.SetDefault("log_level", "info")
	v.SetDefault("cache_ttl", 2*time.Minute)
	v.AutomaticEnv()

	cfg := Config{
		Addr:        v.GetString("addr"),
		DBDriver:    strings.ToLower(v.GetString("db_driver")),
		DatabaseURL: v.GetString("database_url"),
		SQLitePath:  v.GetString("sqlite_path"),
		RedisAddr:   v.GetString("redis_addr"),
		JWTSecret:   v.GetString("jwt_secret"),
		LogLevel:    v.GetString("log_level"),
		CacheTTL:    v.GetDuration("cache_ttl"),
	}

	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverPostgres {
		return Config{}, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.DBDriver)
	}
	return cfg, nil
}
