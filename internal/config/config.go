// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"net/url"

	"github.com/kelseyhightower/envconfig"

	"eagle-mcp/internal/logger"
)

const logPrefix = "config:Validate"

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds process-wide settings. It is resolved once at startup and
// treated as read-only afterwards.
type Config struct {
	// EagleBaseURL is the root of the Eagle app's local API.
	EagleBaseURL string `envconfig:"EAGLE_API_BASE_URL" default:"http://localhost:41595"`

	Transport string `envconfig:"MCP_TRANSPORT" default:"stdio"`

	// HTTP transport
	Port        string `envconfig:"PORT" default:"3000"`
	Token       string `envconfig:"MCP_TOKEN"`
	TLSCertFile string `envconfig:"TLS_CERT_FILE"`
	TLSKeyFile  string `envconfig:"TLS_KEY_FILE"`

	// DisabledTools lists operation names left out of registration.
	DisabledTools []string `envconfig:"EAGLE_DISABLED_TOOLS"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.EagleBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s - EAGLE_API_BASE_URL must be an absolute http(s) URL, got %q", logPrefix, c.EagleBaseURL)
	}
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("%s - MCP_TRANSPORT must be %q or %q, got %q", logPrefix, TransportStdio, TransportHTTP, c.Transport)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s - LOG_LEVEL: %w", logPrefix, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%s - LOG_FORMAT must be text or json, got %q", logPrefix, c.LogFormat)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("%s - TLS_CERT_FILE and TLS_KEY_FILE must be set together", logPrefix)
	}
	return nil
}

// TLSEnabled reports whether the HTTP transport should serve TLS.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
