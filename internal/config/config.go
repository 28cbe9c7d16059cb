package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
)

// Config holds all configuration for the application
type Config struct {
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Resolver ResolverConfig `envPrefix:"RESOLVER_"`
}

// RedisConfig holds Redis-specific configuration. URL takes precedence over
// the discrete fields.
type RedisConfig struct {
	URL      string `env:"URL"`
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Options returns the go-redis client options
func (c RedisConfig) Options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}, nil
}

// ResolverConfig tunes the resolver service
type ResolverConfig struct {
	// BatchLimit caps how many attacks of a batch resolve at once
	BatchLimit int `env:"BATCH_LIMIT" envDefault:"4"`

	// ProfilePrefix namespaces profile keys in Redis
	ProfilePrefix string `env:"PROFILE_PREFIX" envDefault:"profile"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Resolver.BatchLimit < 1 {
		return nil, fmt.Errorf("RESOLVER_BATCH_LIMIT must be at least 1, got %d", cfg.Resolver.BatchLimit)
	}
	if cfg.Resolver.ProfilePrefix == "" {
		return nil, fmt.Errorf("RESOLVER_PROFILE_PREFIX cannot be empty")
	}

	return cfg, nil
}
