package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thanhnp/tron-block-api/internal/apperr"
	"github.com/thanhnp/tron-block-api/internal/logger"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Node    NodeConfig    `yaml:"node"`
	Format  FormatConfig  `yaml:"format"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// NodeConfig represents the upstream TRON node configuration
type NodeConfig struct {
	URL        string            `yaml:"url"`
	Endpoint   string            `yaml:"endpoint"`
	TimeoutMS  int               `yaml:"timeout_ms"`
	MaxRetries int               `yaml:"max_retries"`
	BackoffMS  int               `yaml:"backoff_ms"`
	APIKey     string            `yaml:"api_key"`
	Headers    map[string]string `yaml:"headers"`
}

// FormatConfig controls how block data is rendered
type FormatConfig struct {
	Base58Addresses bool `yaml:"base58_addresses"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 3000,
			Host: "0.0.0.0",
		},
		Node: NodeConfig{
			URL:        "https://api.trongrid.io",
			Endpoint:   "wallet/getnowblock",
			TimeoutMS:  5000,
			MaxRetries: 3,
			BackoffMS:  1000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logger.FormatPretty,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load loads configuration from a YAML file and environment variables.
// A missing file is not an error; defaults and environment still apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, apperr.Wrap(apperr.ConfigError, "failed to read config file", err)
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, apperr.Wrap(apperr.ConfigError, "failed to parse config file", err)
			}
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for startup errors
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return configErrorf("invalid server port: %d", c.Server.Port)
	}
	u, err := url.Parse(c.Node.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return configErrorf("invalid node url: %q", c.Node.URL)
	}
	if c.Node.TimeoutMS <= 0 {
		return configErrorf("request timeout must be > 0, got %d", c.Node.TimeoutMS)
	}
	if c.Node.MaxRetries < 0 {
		return configErrorf("max retries must be >= 0, got %d", c.Node.MaxRetries)
	}
	if c.Node.BackoffMS <= 0 {
		return configErrorf("retry backoff must be > 0, got %d", c.Node.BackoffMS)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return apperr.Wrap(apperr.ConfigError, "invalid log configuration", err)
	}
	switch c.Log.Format {
	case logger.FormatPretty, logger.FormatJSON:
	default:
		return configErrorf("invalid log format: %q", c.Log.Format)
	}
	return nil
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (n NodeConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutMS) * time.Millisecond
}

func (n NodeConfig) Backoff() time.Duration {
	return time.Duration(n.BackoffMS) * time.Millisecond
}

func (c *Config) loadEnv() error {
	// Server config
	if err := envInt("SERVER_PORT", &c.Server.Port); err != nil {
		return err
	}
	if err := envInt("PORT", &c.Server.Port); err != nil {
		return err
	}
	envString("SERVER_HOST", &c.Server.Host)

	// Node config
	envString("TRON_NODE_URL", &c.Node.URL)
	envString("TRON_NODE_ENDPOINT", &c.Node.Endpoint)
	envString("TRON_API_KEY", &c.Node.APIKey)
	if err := envInt("REQUEST_TIMEOUT", &c.Node.TimeoutMS); err != nil {
		return err
	}
	if err := envInt("MAX_RETRIES", &c.Node.MaxRetries); err != nil {
		return err
	}
	if err := envInt("RETRY_BACKOFF", &c.Node.BackoffMS); err != nil {
		return err
	}

	if err := envBool("BASE58_ADDRESSES", &c.Format.Base58Addresses); err != nil {
		return err
	}

	envString("LOG_LEVEL", &c.Log.Level)
	envString("LOG_FORMAT", &c.Log.Format)

	return envBool("METRICS_ENABLED", &c.Metrics.Enabled)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return apperr.Wrap(apperr.ConfigError, fmt.Sprintf("invalid %s", key), err)
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return apperr.Wrap(apperr.ConfigError, fmt.Sprintf("invalid %s", key), err)
	}
	*dst = b
	return nil
}

func configErrorf(format string, args ...any) error {
	return apperr.New(apperr.ConfigError, fmt.Sprintf(format, args...))
}
