// Package config provides centralized configuration management for the
// dashboard. It loads configuration from environment variables with sensible
// defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Auth    AuthConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`

	// TrustedProxies lists proxy IPs or CIDRs whose forwarding headers are
	// believed. Empty means no proxy headers are trusted.
	TrustedProxies []string `env:"SERVER_TRUSTED_PROXIES"`
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig holds inventory backend settings.
type BackendConfig struct {
	// BaseURL is the inventory REST backend base URL (required)
	// Supports both BACKEND_URL and INVENTORY_API_URL for compatibility
	BaseURL string `env:"BACKEND_URL" envAlt:"INVENTORY_API_URL" required:"true"`

	// Timeout bounds each backend request (default: 10s)
	Timeout time.Duration `env:"BACKEND_TIMEOUT" default:"10s"`
}

// AuthConfig holds identity provider settings.
type AuthConfig struct {
	// BaseURL is the hosted identity provider base URL (required)
	BaseURL string `env:"AUTH_URL" required:"true"`

	// APIKey is the project API key sent with session lookups (required)
	APIKey string `env:"AUTH_API_KEY" required:"true"`

	// CookieName is the cookie carrying the access token (default: sv_access_token)
	CookieName string `env:"AUTH_COOKIE_NAME" default:"sv_access_token"`

	// Timeout bounds each session lookup (default: 5s)
	Timeout time.Duration `env:"AUTH_TIMEOUT" default:"5s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Server.ShutdownTimeout, validation.Required),
	); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := validation.ValidateStruct(&c.Backend,
		validation.Field(&c.Backend.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Backend.Timeout, validation.Required),
	); err != nil {
		return fmt.Errorf("backend: %w", err)
	}

	if err := validation.ValidateStruct(&c.Auth,
		validation.Field(&c.Auth.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Auth.APIKey, validation.Required),
		validation.Field(&c.Auth.CookieName, validation.Required),
		validation.Field(&c.Auth.Timeout, validation.Required),
	); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	if err := validation.ValidateStruct(&c.Logging,
		validation.Field(&c.Logging.Level, validation.In("debug", "info", "warn", "warning", "error")),
		validation.Field(&c.Logging.Format, validation.In("text", "json")),
	); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// The identity provider API key is masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Backend: {BaseURL: %q, Timeout: %s}, ", c.Backend.BaseURL, c.Backend.Timeout))
	b.WriteString(fmt.Sprintf("Auth: {BaseURL: %q, APIKey: [MASKED], CookieName: %q}, ",
		c.Auth.BaseURL, c.Auth.CookieName))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
