// Package common provides shared utilities for Kessan
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

// Config holds all configuration for Kessan
type Config struct {
	Environment string          `toml:"environment"`
	Roster      RosterConfig    `toml:"roster"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Collector   CollectorConfig `toml:"collector"`
	Schedule    ScheduleConfig  `toml:"schedule"`
	Logging     LoggingConfig   `toml:"logging"`
}

// RosterConfig controls where the company roster comes from.
type RosterConfig struct {
	CSVPath      string `toml:"csv_path"`      // local fallback roster (code, company_name)
	MarketSuffix string `toml:"market_suffix"` // exchange suffix appended to codes, e.g. ".T"
}

// StorageConfig holds storage configuration.
type StorageConfig struct {
	Data AreaConfig `toml:"data"` // per-company JSON artifacts (file-based)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo     YahooConfig     `toml:"yahoo"`
	WordPress WordPressConfig `toml:"wordpress"`
}

// YahooConfig holds market-data provider configuration
type YahooConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// WordPressConfig holds CMS REST API configuration
type WordPressConfig struct {
	BaseURL     string `toml:"base_url"`
	Username    string `toml:"username"`
	AppPassword string `toml:"app_password"`
	PerPage     int    `toml:"per_page"`
	MaxPages    int    `toml:"max_pages"`
	Timeout     string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *WordPressConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// CollectorConfig controls batch collection behaviour
type CollectorConfig struct {
	Workers          int `toml:"workers"`           // concurrent companies per batch
	ProgressInterval int `toml:"progress_interval"` // log progress every N companies
}

// ScheduleConfig holds cron expressions for the three harvest cadences
type ScheduleConfig struct {
	History    string `toml:"history"`    // daily price history
	Financials string `toml:"financials"` // weekly statements
	Analyst    string `toml:"analyst"`    // monthly analyst/earnings
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
		Roster: RosterConfig{
			CSVPath:      "data/wordpress_companies.csv",
			MarketSuffix: ".T",
		},
		Storage: StorageConfig{
			Data: AreaConfig{Path: "data"},
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:   "https://query1.finance.yahoo.com",
				RateLimit: 2,
				Timeout:   "30s",
			},
			WordPress: WordPressConfig{
				BaseURL:  "https://japanir.jp",
				PerPage:  100,
				MaxPages: 50,
				Timeout:  "30s",
			},
		},
		Collector: CollectorConfig{
			Workers:          3,
			ProgressInterval: 10,
		},
		Schedule: ScheduleConfig{
			History:    "0 18 * * 1-5", // weekday evenings after close
			Financials: "0 2 * * 6",    // Saturday
			Analyst:    "0 3 1 * *",    // first of the month
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
	if env := os.Getenv("KESSAN_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("KESSAN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("KESSAN_DATA_PATH"); path != "" {
		config.Storage.Data.Path = path
	}

	if csv := os.Getenv("KESSAN_ROSTER_CSV"); csv != "" {
		config.Roster.CSVPath = csv
	}

	if workers := os.Getenv("KESSAN_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			config.Collector.Workers = n
		}
	}

	// CMS overrides
	if v := os.Getenv("WP_SITE_URL"); v != "" {
		config.Clients.WordPress.BaseURL = v
	}
	if v := os.Getenv("WP_USER"); v != "" {
		config.Clients.WordPress.Username = v
	}
	if v := os.Getenv("WP_PASSWORD"); v != "" {
		config.Clients.WordPress.AppPassword = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ResolveDataPath resolves a relative storage path against the binary directory.
func ResolveDataPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return path
	}
	return filepath.Join(filepath.Dir(exe), path)
}
