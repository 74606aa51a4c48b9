// Package config handles loading and managing application configuration.
package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/emberwick/emberwick-storefront/internal/domain"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storefront platform credentials
	Store StoreConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"debug"` // "debug", "release", or "test"
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// StoreConfig holds the Shopify Storefront credentials. The credential
// fields are deliberately not required: an empty value is a valid state
// that the bootstrapper detects and surfaces as a configuration error, so
// the server always starts.
type StoreConfig struct {
	Domain                string `env:"SHOPIFY_STORE_DOMAIN"`
	StorefrontAccessToken string `env:"SHOPIFY_STOREFRONT_ACCESS_TOKEN"`
	APIVersion            string `env:"SHOPIFY_API_VERSION" envDefault:"2023-07"`
}

// Load reads configuration from environment variables.
// A .env file is loaded first when present, for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// StoreConfig projects the credential pair into the domain shape served by
// the config provider endpoint and consumed by the catalog bootstrapper.
func (c *Config) StoreConfig() domain.StoreConfig {
	return domain.StoreConfig{
		Domain:                c.Store.Domain,
		StorefrontAccessToken: c.Store.StorefrontAccessToken,
	}
}
