// Package common provides shared utilities for rankscreen
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for rankscreen
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Ranking     RankingConfig `toml:"ranking"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// RankingConfig describes the precomputed ranking file. Column labels are
// fixed at the data-provider boundary, so they live in configuration
// rather than in code.
type RankingConfig struct {
	Path    string         `toml:"path"`
	TopN    int            `toml:"top_n"`
	Columns RankingColumns `toml:"columns"`
}

// RankingColumns maps the ranking file's column labels to record fields.
// A label left empty means the column is not expected in the file.
type RankingColumns struct {
	Identifier string `toml:"identifier"`
	Name       string `toml:"name"`
	Overall    string `toml:"overall"`
	Value      string `toml:"value"`
	Quality    string `toml:"quality"`
	Growth     string `toml:"growth"`
	Momentum   string `toml:"momentum"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo YahooConfig `toml:"yahoo"`
}

// YahooConfig holds Yahoo Finance client configuration
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

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults. The default
// column labels match the TSE comprehensive ranking export this project
// was built around; deployments screening other files override them.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Ranking: RankingConfig{
			Path: "data/ranking.csv",
			TopN: 100,
			Columns: RankingColumns{
				Identifier: "ティッカー",
				Name:       "会社名",
				Overall:    "総合スコア",
				Value:      "VALUEスコア",
				Quality:    "QUALITYスコア",
				Growth:     "GROWTHスコア",
				Momentum:   "MOMENTUMスコア",
			},
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:   "https://query2.finance.yahoo.com",
				RateLimit: 5,
				Timeout:   "30s",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
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
	if env := os.Getenv("RANKSCREEN_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("RANKSCREEN_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("RANKSCREEN_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("RANKSCREEN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("RANKSCREEN_RANKING_PATH"); path != "" {
		config.Ranking.Path = path
	}

	if topN := os.Getenv("RANKSCREEN_TOP_N"); topN != "" {
		if n, err := strconv.Atoi(topN); err == nil && n > 0 {
			config.Ranking.TopN = n
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
