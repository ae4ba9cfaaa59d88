package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FSMCP"

// Config holds all configurable values for the server.
type Config struct {
	Transport           string `envconfig:"TRANSPORT" default:"stdio"`
	Host                string `envconfig:"HOST" default:"127.0.0.1"`
	Port                int    `envconfig:"PORT" default:"8080"`
	MaxFileSizeMB       int    `envconfig:"MAX_FILE_SIZE_MB" default:"0"`
	OperationTimeoutSec int    `envconfig:"TIMEOUT" default:"30"`
	LogLevel            string `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment      bool   `envconfig:"LOG_DEV" default:"false"`
	LockFile            string `envconfig:"LOCK_FILE"`
	MetricsEnabled      bool   `envconfig:"METRICS" default:"true"`
}

// Load reads the environment and then applies command-line flags from args
// on top of it. Flags win over environment variables.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	fs := flag.NewFlagSet("fs-resource-server", flag.ContinueOnError)
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport protocol (stdio or http)")
	fs.StringVar(&cfg.Host, "host", cfg.Host, "Listen address for HTTP transport")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "Port for HTTP transport")
	fs.IntVar(&cfg.MaxFileSizeMB, "max-file-size", cfg.MaxFileSizeMB, "Maximum readable file size in MB (0 for unlimited)")
	fs.IntVar(&cfg.OperationTimeoutSec, "timeout", cfg.OperationTimeoutSec, "HTTP read/write timeout in seconds")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.LogDevelopment, "log-dev", cfg.LogDevelopment, "Human-readable development logging")
	fs.StringVar(&cfg.LockFile, "lock-file", cfg.LockFile, "Exclusive instance lock file (empty to disable)")
	fs.BoolVar(&cfg.MetricsEnabled, "metrics", cfg.MetricsEnabled, "Expose Prometheus metrics on /metrics")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if c.Transport != "http" && c.Transport != "stdio" {
		return fmt.Errorf("transport must be 'http' or 'stdio'")
	}

	if c.Transport == "http" && c.Host == "" {
		return fmt.Errorf("host is required for http transport")
	}

	if c.Port < 1024 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1024 and 65535")
	}

	if c.MaxFileSizeMB < 0 || c.MaxFileSizeMB > 1024 {
		return fmt.Errorf("max file size must be between 0 and 1024 MB")
	}

	if c.OperationTimeoutSec < 1 || c.OperationTimeoutSec > 300 {
		return fmt.Errorf("operation timeout must be between 1 and 300 seconds")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error")
	}

	return nil
}

// MaxFileSizeBytes returns the read limit in bytes; 0 means unlimited.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// OperationTimeout returns the configured timeout as a duration.
func (c *Config) OperationTimeout() time.Duration {
	return time.Duration(c.OperationTimeoutSec) * time.Second
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
