package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/linearmcp/linear-mcp-go/pkg/batch"
)

const ConfigFileName = ".linear-mcp.yml"

// EnvAPIKey overrides the configured API key when set.
const EnvAPIKey = "LINEAR_API_KEY"

// Config represents the server configuration
type Config struct {
	APIKey   string         `yaml:"api_key,omitempty"`
	Endpoint string         `yaml:"endpoint,omitempty"`
	Batch    BatchConfig    `yaml:"batch"`
	Log      LogConfig      `yaml:"log,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
}

// BatchConfig tunes batch execution
type BatchConfig struct {
	Concurrency      int `yaml:"concurrency"`
	MaxRetries       int `yaml:"max_retries"`
	RetryBaseDelayMS int `yaml:"retry_base_delay_ms"`
	ItemDelayMS      int `yaml:"item_delay_ms"`
}

// LogConfig controls logging output
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// DefaultsConfig represents default values applied to new issues
type DefaultsConfig struct {
	Team     string `yaml:"team,omitempty"`
	Priority string `yaml:"priority,omitempty"`
	State    string `yaml:"state,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Batch: BatchConfig{
			Concurrency:      batch.DefaultConcurrency,
			MaxRetries:       batch.DefaultMaxRetries,
			RetryBaseDelayMS: 500,
			ItemDelayMS:      100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from file, falling back to defaults when no
// file is found. The LINEAR_API_KEY environment variable always wins
// over the file value.
func Load() (*Config, error) {
	config := DefaultConfig()

	if configPath := findConfigFile(); configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file at %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if key := os.Getenv(EnvAPIKey); key != "" {
		config.APIKey = key
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in current and parent directories
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Exists checks if configuration file exists
func Exists() bool {
	return findConfigFile() != ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required: set %s or api_key in %s", EnvAPIKey, ConfigFileName)
	}

	b := c.Batch
	if b.Concurrency < 1 || b.Concurrency > batch.MaxItems {
		return fmt.Errorf("batch.concurrency must be between 1 and %d, got %d", batch.MaxItems, b.Concurrency)
	}
	if b.MaxRetries < 0 {
		return fmt.Errorf("batch.max_retries must not be negative, got %d", b.MaxRetries)
	}
	if b.RetryBaseDelayMS < 0 {
		return fmt.Errorf("batch.retry_base_delay_ms must not be negative, got %d", b.RetryBaseDelayMS)
	}
	if b.ItemDelayMS < 0 {
		return fmt.Errorf("batch.item_delay_ms must not be negative, got %d", b.ItemDelayMS)
	}

	switch c.Log.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	return nil
}

// Options converts the batch section into orchestrator options.
func (c *Config) Options() batch.Options {
	return batch.Options{
		Concurrency: c.Batch.Concurrency,
		Retry: batch.RetryPolicy{
			MaxRetries: c.Batch.MaxRetries,
			BaseDelay:  time.Duration(c.Batch.RetryBaseDelayMS) * time.Millisecond,
		},
		ItemDelay: time.Duration(c.Batch.ItemDelayMS) * time.Millisecond,
	}
}
