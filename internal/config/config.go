package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	HTTP    HTTPConfig
	Redis   RedisConfig
	Content ContentConfig
}

// HTTPConfig holds the HTTP server configuration
type HTTPConfig struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`
}

// RedisConfig holds Redis-specific configuration. An empty URL selects the
// in-memory repositories.
type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// ContentConfig holds scenario pack loading configuration. An empty dir
// skips seed loading.
type ContentConfig struct {
	Dir string `env:"CONTENT_DIR"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
