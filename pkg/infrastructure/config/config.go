package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variables read by Load
const (
	EnvDestroyPartTarget = "MEKPARTS_DESTROY_PART_TARGET"
	EnvRandomSeed        = "MEKPARTS_RANDOM_SEED"
	EnvLogLevel          = "MEKPARTS_LOG_LEVEL"
	EnvLogFormat         = "MEKPARTS_LOG_FORMAT"
	EnvLogDevelopment    = "MEKPARTS_LOG_DEVELOPMENT"
	EnvSQLitePath        = "MEKPARTS_SQLITE_PATH"
	EnvPostgresDSN       = "MEKPARTS_POSTGRES_DSN"
	EnvStoreTimeout      = "MEKPARTS_STORE_TIMEOUT"
)

// DefaultDestroyPartTarget is the 2d6 roll a freshly damaged part must reach
// to survive
const DefaultDestroyPartTarget = 10

type Config struct {
	values map[string]string
}

func Load() (*Config, error) {
	cfg := &Config{
		values: make(map[string]string),
	}

	cfg.loadFromEnv()
	return cfg, nil
}

func (c *Config) loadFromEnv() {
	envVars := []string{
		EnvDestroyPartTarget,
		EnvRandomSeed,
		EnvLogLevel,
		EnvLogFormat,
		EnvLogDevelopment,
		EnvSQLitePath,
		EnvPostgresDSN,
		EnvStoreTimeout,
	}

	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			c.values[envVar] = value
		}
	}
}

// Set overrides a value, as command-line flags do
func (c *Config) Set(key, value string) {
	c.values[key] = value
}

func (c *Config) GetString(key, defaultValue string) string {
	if value, exists := c.values[key]; exists {
		return value
	}
	return defaultValue
}

func (c *Config) GetInt(key string, defaultValue int) int {
	if value, exists := c.values[key]; exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) GetUint64(key string, defaultValue uint64) uint64 {
	if value, exists := c.values[key]; exists {
		if v, err := strconv.ParseUint(value, 10, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func (c *Config) GetBool(key string, defaultValue bool) bool {
	if value, exists := c.values[key]; exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func (c *Config) GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := c.values[key]; exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// CampaignOptions are the campaign-wide settings maintenance runs with
type CampaignOptions struct {
	DestroyPartTarget int
	RandomSeed        uint64
	LogLevel          string
	LogFormat         string
	LogDevelopment    bool
	SQLitePath        string
	PostgresDSN       string
	StoreTimeout      time.Duration
}

// CampaignOptions resolves the options with their defaults
func (c *Config) CampaignOptions() CampaignOptions {
	target := c.GetInt(EnvDestroyPartTarget, DefaultDestroyPartTarget)
	if target < 2 || target > 13 {
		target = DefaultDestroyPartTarget
	}
	return CampaignOptions{
		DestroyPartTarget: target,
		RandomSeed:        c.GetUint64(EnvRandomSeed, 0),
		LogLevel:          c.GetString(EnvLogLevel, "info"),
		LogFormat:         c.GetString(EnvLogFormat, "console"),
		LogDevelopment:    c.GetBool(EnvLogDevelopment, false),
		SQLitePath:        c.GetString(EnvSQLitePath, ""),
		PostgresDSN:       c.GetString(EnvPostgresDSN, ""),
		StoreTimeout:      c.GetDuration(EnvStoreTimeout, 30*time.Second),
	}
}
