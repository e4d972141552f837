package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds all client settings, populated from the environment
type Config struct {
	API     APIConfig
	Storage StorageConfig
	Log     LogConfig
}

// APIConfig holds the backend connection settings
type APIConfig struct {
	BaseURL string        `envconfig:"API_URL" default:"http://localhost:8000"`
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
}

// StorageConfig holds the durable local storage settings
type StorageConfig struct {
	// DataDir is where session and guest-cart state is persisted.
	// Defaults to ~/.coffee-marketplace when unset.
	DataDir string `envconfig:"DATA_DIR"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from .env files and the environment
func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("coffee", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}

	if cfg.Storage.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve home directory")
		}
		cfg.Storage.DataDir = filepath.Join(home, ".coffee-marketplace")
	}

	return &cfg, nil
}
