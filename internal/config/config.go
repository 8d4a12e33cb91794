// Package config holds the settings for the web surface, loaded from
// environment variables with defaults and validated on startup. The
// profiling core takes no configuration; everything here belongs to
// the hosting layer.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig
	Upload  UploadConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// UploadConfig bounds the upload surface before bytes reach the core.
type UploadConfig struct {
	// MaxSizeMB caps accepted uploads. Read from MAX_CONTENT_LENGTH_MB
	// with UPLOAD_MAX_MB as an accepted alias.
	MaxSizeMB int
}

// LoggingConfig selects log verbosity and output shape.
type LoggingConfig struct {
	Level  string
	Format string
}

// Addr returns the listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MaxBytes returns the upload cap in bytes.
func (c *UploadConfig) MaxBytes() int64 {
	return int64(c.MaxSizeMB) * 1024 * 1024
}

// Load reads configuration from the environment, applying defaults for
// unset values, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	var errs []string

	cfg.Server.Host = envString("SERVER_HOST", "0.0.0.0")
	cfg.Server.Port = envInt("SERVER_PORT", "", 8080, &errs)
	cfg.Server.ReadTimeout = envDuration("SERVER_READ_TIMEOUT", 15*time.Second, &errs)
	cfg.Server.WriteTimeout = envDuration("SERVER_WRITE_TIMEOUT", 30*time.Second, &errs)
	cfg.Server.IdleTimeout = envDuration("SERVER_IDLE_TIMEOUT", 60*time.Second, &errs)
	cfg.Server.RequestTimeout = envDuration("SERVER_REQUEST_TIMEOUT", 60*time.Second, &errs)
	cfg.Server.ShutdownTimeout = envDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second, &errs)

	cfg.Upload.MaxSizeMB = envInt("MAX_CONTENT_LENGTH_MB", "UPLOAD_MAX_MB", 10, &errs)

	cfg.Logging.Level = envString("LOG_LEVEL", "info")
	cfg.Logging.Format = envString("LOG_FORMAT", "text")

	if len(errs) > 0 {
		return nil, fmt.Errorf("config load: %s", strings.Join(errs, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration, reporting every failure at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Upload.MaxSizeMB <= 0 {
		errs = append(errs, "MAX_CONTENT_LENGTH_MB must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation: %s", strings.Join(errs, "; "))
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key, altKey string, fallback int, errs *[]string) int {
	v := os.Getenv(key)
	if v == "" && altKey != "" {
		v = os.Getenv(altKey)
	}
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s=%q is not an integer", key, v))
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration, errs *[]string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s=%q is not a duration", key, v))
		return fallback
	}
	return d
}
