package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ligustah/xfer/pkg/transfer"
)

// Config defines configuration for the xfer CLI.
type Config struct {
	From           string        `yaml:"from"`
	To             string        `yaml:"to"`
	Units          string        `yaml:"units"` // "decimal" or "binary"
	BufferSize     int64         `yaml:"buffer_size"`
	ExpectedSize   int64         `yaml:"expected_size"`
	Progress       bool          `yaml:"progress"`
	Bar            bool          `yaml:"bar"`
	UpdateInterval time.Duration `yaml:"update_interval"`
	HTTP           HTTPConfig    `yaml:"http"`
}

// HTTPConfig defines HTTP source behavior.
type HTTPConfig struct {
	HeaderTimeout   time.Duration `yaml:"header_timeout"`
	RetryAttempts   int           `yaml:"retry_attempts"`
	RetryBackoff    time.Duration `yaml:"retry_backoff"`
	RetryMaxBackoff time.Duration `yaml:"retry_max_backoff"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Units:          "binary",
		BufferSize:     64 * 1024,
		Progress:       true,
		UpdateInterval: 500 * time.Millisecond,
		HTTP: HTTPConfig{
			HeaderTimeout:   30 * time.Second,
			RetryAttempts:   5,
			RetryBackoff:    time.Second,
			RetryMaxBackoff: 30 * time.Second,
		},
	}
}

// UnitStyle maps the configured units string to a transfer.UnitStyle.
func (c *Config) UnitStyle() (transfer.UnitStyle, error) {
	switch c.Units {
	case "decimal":
		return transfer.Decimal, nil
	case "binary", "":
		return transfer.Binary, nil
	default:
		return 0, fmt.Errorf("config: unknown units style %q", c.Units)
	}
}

// yamlConfig is used for YAML unmarshaling with human-readable sizes and
// durations as strings.
type yamlConfig struct {
	From           string         `yaml:"from"`
	To             string         `yaml:"to"`
	Units          string         `yaml:"units"`
	BufferSize     string         `yaml:"buffer_size"`
	ExpectedSize   string         `yaml:"expected_size"`
	Progress       *bool          `yaml:"progress"`
	Bar            bool           `yaml:"bar"`
	UpdateInterval string         `yaml:"update_interval"`
	HTTP           yamlHTTPConfig `yaml:"http"`
}

type yamlHTTPConfig struct {
	HeaderTimeout   string `yaml:"header_timeout"`
	RetryAttempts   int    `yaml:"retry_attempts"`
	RetryBackoff    string `yaml:"retry_backoff"`
	RetryMaxBackoff string `yaml:"retry_max_backoff"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.From != "" {
		cfg.From = yc.From
	}
	if yc.To != "" {
		cfg.To = yc.To
	}
	if yc.Units != "" {
		cfg.Units = yc.Units
	}
	if yc.BufferSize != "" {
		size, err := transfer.ParseBytes(yc.BufferSize)
		if err != nil {
			return Config{}, fmt.Errorf("parse buffer_size: %w", err)
		}
		cfg.BufferSize = size
	}
	if yc.ExpectedSize != "" {
		size, err := transfer.ParseBytes(yc.ExpectedSize)
		if err != nil {
			return Config{}, fmt.Errorf("parse expected_size: %w", err)
		}
		cfg.ExpectedSize = size
	}
	if yc.Progress != nil {
		cfg.Progress = *yc.Progress
	}
	cfg.Bar = yc.Bar
	if yc.UpdateInterval != "" {
		d, err := time.ParseDuration(yc.UpdateInterval)
		if err != nil {
			return Config{}, fmt.Errorf("parse update_interval: %w", err)
		}
		cfg.UpdateInterval = d
	}
	if yc.HTTP.HeaderTimeout != "" {
		d, err := time.ParseDuration(yc.HTTP.HeaderTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse http.header_timeout: %w", err)
		}
		cfg.HTTP.HeaderTimeout = d
	}
	if yc.HTTP.RetryAttempts != 0 {
		cfg.HTTP.RetryAttempts = yc.HTTP.RetryAttempts
	}
	if yc.HTTP.RetryBackoff != "" {
		d, err := time.ParseDuration(yc.HTTP.RetryBackoff)
		if err != nil {
			return Config{}, fmt.Errorf("parse http.retry_backoff: %w", err)
		}
		cfg.HTTP.RetryBackoff = d
	}
	if yc.HTTP.RetryMaxBackoff != "" {
		d, err := time.ParseDuration(yc.HTTP.RetryMaxBackoff)
		if err != nil {
			return Config{}, fmt.Errorf("parse http.retry_max_backoff: %w", err)
		}
		cfg.HTTP.RetryMaxBackoff = d
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the XFER_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("XFER_FROM"); v != "" {
		c.From = v
	}
	if v := os.Getenv("XFER_TO"); v != "" {
		c.To = v
	}
	if v := os.Getenv("XFER_UNITS"); v != "" {
		c.Units = v
	}
	if v := os.Getenv("XFER_BUFFER_SIZE"); v != "" {
		size, err := transfer.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("parse XFER_BUFFER_SIZE: %w", err)
		}
		c.BufferSize = size
	}
	if v := os.Getenv("XFER_EXPECTED_SIZE"); v != "" {
		size, err := transfer.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("parse XFER_EXPECTED_SIZE: %w", err)
		}
		c.ExpectedSize = size
	}
	if v := os.Getenv("XFER_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("XFER_BAR"); v != "" {
		c.Bar = v == "true" || v == "1"
	}
	if v := os.Getenv("XFER_UPDATE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse XFER_UPDATE_INTERVAL: %w", err)
		}
		c.UpdateInterval = d
	}
	if v := os.Getenv("XFER_HTTP_RETRY_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse XFER_HTTP_RETRY_ATTEMPTS: %w", err)
		}
		c.HTTP.RetryAttempts = n
	}
	if v := os.Getenv("XFER_HTTP_RETRY_BACKOFF"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse XFER_HTTP_RETRY_BACKOFF: %w", err)
		}
		c.HTTP.RetryBackoff = d
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.From == "" {
		return errors.New("config: from is required")
	}
	if c.To == "" {
		return errors.New("config: to is required")
	}
	if _, err := c.UnitStyle(); err != nil {
		return err
	}
	if c.BufferSize <= 0 {
		return errors.New("config: buffer_size must be positive")
	}
	if c.UpdateInterval <= 0 {
		return errors.New("config: update_interval must be positive")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.From != "" {
		c.From = override.From
	}
	if override.To != "" {
		c.To = override.To
	}
	if override.Units != "" {
		c.Units = override.Units
	}
	if override.BufferSize != 0 {
		c.BufferSize = override.BufferSize
	}
	if override.ExpectedSize != 0 {
		c.ExpectedSize = override.ExpectedSize
	}
	if override.Bar {
		c.Bar = override.Bar
	}
	if override.UpdateInterval != 0 {
		c.UpdateInterval = override.UpdateInterval
	}
	if override.HTTP.HeaderTimeout != 0 {
		c.HTTP.HeaderTimeout = override.HTTP.HeaderTimeout
	}
	if override.HTTP.RetryAttempts != 0 {
		c.HTTP.RetryAttempts = override.HTTP.RetryAttempts
	}
	if override.HTTP.RetryBackoff != 0 {
		c.HTTP.RetryBackoff = override.HTTP.RetryBackoff
	}
	if override.HTTP.RetryMaxBackoff != 0 {
		c.HTTP.RetryMaxBackoff = override.HTTP.RetryMaxBackoff
	}
	return c
}
