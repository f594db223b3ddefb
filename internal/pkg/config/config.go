package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
}

type PostgresConfig struct {
	URL string `env:"DATABASE_URL, required"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type AuthConfig struct {
	// RefreshOneUse turns on one-use refresh tokens backed by the Redis
	// registry. Off by default: the stateless baseline keeps a refresh
	// token valid for its whole window.
	RefreshOneUse bool `env:"AUTH_REFRESH_ONE_USE, default=false"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.RefreshOneUse && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("config: AUTH_REFRESH_ONE_USE requires REDIS_ADDR")
	}
	return &cfg, nil
}
