// Package config provides configuration management for the set-challenge
// tool.
package config

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Search SearchConfig `mapstructure:"search"`
	Status StatusConfig `mapstructure:"status"`
	Log    LogConfig    `mapstructure:"log"`
}

// SearchConfig holds search engine configuration.
type SearchConfig struct {
	// Algorithm selects the engine: basic or incremental.
	Algorithm string `mapstructure:"algorithm"`
	// DeckSize is the default target deck size.
	DeckSize int `mapstructure:"deck_size"`
	// Workers is the number of parallel workers; 0 picks the default
	// derived from the CPU count.
	Workers int `mapstructure:"workers"`
	// BatchSize is the number of evaluation steps a worker performs
	// before yielding to the coordinator.
	BatchSize int `mapstructure:"batch_size"`
}

// StatusConfig holds status reporting configuration.
type StatusConfig struct {
	// Interval between status lines, in seconds. 0 disables them.
	Interval int `mapstructure:"interval"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"` // empty means stderr
}

// Load reads configuration from the specified file path. An empty path
// searches the standard locations, and finding no file there falls back
// to defaults; an explicit path that does not exist is an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/set-challenge")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SETCH")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadFromReader loads configuration from raw content (useful for
// testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("search.algorithm", "incremental")
	v.SetDefault("search.deck_size", 12)
	v.SetDefault("search.workers", 0)
	v.SetDefault("search.batch_size", 800)

	v.SetDefault("status.interval", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output_path", "")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Search.Algorithm != "basic" && c.Search.Algorithm != "incremental" {
		return fmt.Errorf("unsupported algorithm: %s", c.Search.Algorithm)
	}
	if c.Search.DeckSize < 3 || c.Search.DeckSize > 81 {
		return fmt.Errorf("deck size must be in [3, 81], got %d", c.Search.DeckSize)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Search.Workers)
	}
	if c.Search.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", c.Search.BatchSize)
	}
	if c.Status.Interval < 0 {
		return fmt.Errorf("status interval must be non-negative, got %d", c.Status.Interval)
	}
	return nil
}
