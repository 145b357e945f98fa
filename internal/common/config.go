// Package common provides shared utilities for Asset Cockpit
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Asset Cockpit
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Portfolio   PortfolioConfig `toml:"portfolio"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the data directory for the persisted JSON documents
// (holdings configuration and the long-lived metadata cache).
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	MarketData MarketDataConfig `toml:"marketdata"`
}

// MarketDataConfig holds the external market-data provider configuration
type MarketDataConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *MarketDataConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// PortfolioConfig holds holdings defaults and display-name curation.
type PortfolioConfig struct {
	// DefaultShares is the share count assigned when a ticker is added
	// without an explicit position.
	DefaultShares int64 `toml:"default_shares"`
	// MarketSuffix is appended to bare 4-digit codes (e.g. "7203" -> "7203.T").
	MarketSuffix string `toml:"market_suffix"`
	// NameOverrides extends the built-in curated display-name table.
	NameOverrides map[string]string `toml:"name_overrides"`
	// ExtraRemovals extends the built-in boilerplate word list for
	// display-name cleanup.
	ExtraRemovals []string `toml:"extra_removals"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data",
		},
		Clients: ClientsConfig{
			MarketData: MarketDataConfig{
				BaseURL:   "https://marketdata.app/api",
				RateLimit: 10,
				Timeout:   "30s",
			},
		},
		Portfolio: PortfolioConfig{
			DefaultShares: 100,
			MarketSuffix:  ".T",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("COCKPIT_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("COCKPIT_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("COCKPIT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("COCKPIT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("COCKPIT_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if key := os.Getenv("COCKPIT_MARKETDATA_API_KEY"); key != "" {
		config.Clients.MarketData.APIKey = key
	}
	if key := os.Getenv("MARKETDATA_API_KEY"); key != "" && config.Clients.MarketData.APIKey == "" {
		config.Clients.MarketData.APIKey = key
	}

	if url := os.Getenv("COCKPIT_MARKETDATA_BASE_URL"); url != "" {
		config.Clients.MarketData.BaseURL = url
	}

	if suffix := os.Getenv("COCKPIT_MARKET_SUFFIX"); suffix != "" {
		config.Portfolio.MarketSuffix = suffix
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// HoldingsFilePath returns the path of the persisted holdings document.
func (c *Config) HoldingsFilePath() string {
	return filepath.Join(c.Storage.Path, "holdings.json")
}

// MetadataFilePath returns the path of the persisted metadata cache document.
func (c *Config) MetadataFilePath() string {
	return filepath.Join(c.Storage.Path, "metadata_db.json")
}
