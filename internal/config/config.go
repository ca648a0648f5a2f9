package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default configuration file location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port                string `yaml:"port"`
	DatabaseURL         string `yaml:"databaseURL"`
	LogLevel            string `yaml:"logLevel"`
	RedisAddr           string `yaml:"redisAddr"`
	BookCacheTTLSeconds int    `yaml:"bookCacheTTLSeconds"`
}

// BookCacheTTL returns the configured cache TTL, defaulting to five minutes.
func (c FileConfig) BookCacheTTL() time.Duration {
	if c.BookCacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.BookCacheTTLSeconds) * time.Second
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("LIBRARY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LIBRARY_BOOK_CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BookCacheTTLSeconds = n
		}
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	if cfg.DatabaseURL == "" {
		return errors.New("config: databaseURL is required (set in config.yaml or DATABASE_URL)")
	}
	if cfg.BookCacheTTLSeconds < 0 {
		return errors.New("config: bookCacheTTLSeconds must not be negative")
	}
	return nil
}
