// Package common provides shared utilities for GoldTrack
package common

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/intellinez-com/GoldTrack-sub000/internal/interfaces"
)

// Config holds all configuration for GoldTrack
type Config struct {
	Environment string         `toml:"environment"`
	Metals      []string       `toml:"metals"`   // provider symbols, e.g. ["XAU", "XAG"]
	Currency    string         `toml:"currency"` // display/series currency, e.g. "INR" or "USD"
	HistoryDays int            `toml:"history_days"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Clients     ClientsConfig  `toml:"clients"`
	Logging     LoggingConfig  `toml:"logging"`
	Schedule    ScheduleConfig `toml:"schedule"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the data directory for the BadgerHold store.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	GoldAPI GoldAPIConfig `toml:"goldapi"`
	Gemini  GeminiConfig  `toml:"gemini"`
}

// GoldAPIConfig holds the metal price provider configuration
type GoldAPIConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *GoldAPIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration for the narrative provider
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// ScheduleConfig holds the daily price refresh schedule.
type ScheduleConfig struct {
	DailyUpdateCron string `toml:"daily_update_cron"` // robfig/cron spec
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Metals:      []string{"XAU"},
		Currency:    "USD",
		HistoryDays: 365,
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data/goldtrack",
		},
		Clients: ClientsConfig{
			GoldAPI: GoldAPIConfig{
				BaseURL:   "https://api.metalpriceapi.com/v1",
				RateLimit: 5,
				Timeout:   "30s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-3-flash-preview",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Schedule: ScheduleConfig{
			DailyUpdateCron: "15 6 * * *",
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
	normalize(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("GOLDTRACK_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("GOLDTRACK_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("GOLDTRACK_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("GOLDTRACK_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("GOLDTRACK_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if cur := os.Getenv("GOLDTRACK_CURRENCY"); cur != "" {
		config.Currency = strings.ToUpper(cur)
	}

	if metals := os.Getenv("GOLDTRACK_METALS"); metals != "" {
		var list []string
		for _, m := range strings.Split(metals, ",") {
			if m = strings.TrimSpace(m); m != "" {
				list = append(list, strings.ToUpper(m))
			}
		}
		if len(list) > 0 {
			config.Metals = list
		}
	}
}

// normalize fixes up values that would otherwise break downstream math.
func normalize(config *Config) {
	config.Currency = strings.ToUpper(strings.TrimSpace(config.Currency))
	if config.Currency == "" {
		config.Currency = "USD"
	}
	if config.HistoryDays < MinHistoryDays {
		config.HistoryDays = MinHistoryDays
	}
}

// MinHistoryDays is the smallest usable series window: the trend engine needs
// at least 100 points plus slack for market holidays.
const MinHistoryDays = 120

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ResolveAPIKey resolves an API key from environment, the KV store, or fallback
func ResolveAPIKey(ctx context.Context, store interfaces.KeyValueStore, name string, fallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"goldapi_api_key": {"GOLDAPI_API_KEY", "GOLDTRACK_GOLDAPI_API_KEY"},
		"gemini_api_key":  {"GEMINI_API_KEY", "GOLDTRACK_GEMINI_API_KEY", "GOOGLE_API_KEY"},
	}

	// Environment variables win
	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	// Then the system KV store
	if store != nil {
		apiKey, err := store.Get(ctx, name)
		if err == nil && apiKey != "" {
			return apiKey, nil
		}
	}

	if fallback != "" {
		return fallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or store", name)
}
