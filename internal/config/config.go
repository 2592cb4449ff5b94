// Package config provides configuration management for the news gateway.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingListenAddr    = errors.New("server.listen_addr is required")
	ErrInvalidBasePath      = errors.New("server.base_path must start with '/' and not end with '/'")
	ErrInvalidHeaderTimeout = errors.New("server.read_header_timeout_sec must be at least 1")
	ErrInvalidShutdown      = errors.New("server.shutdown_timeout_sec must be non-negative")
	ErrInvalidBaseURL       = errors.New("provider.base_url must be an absolute http(s) URL")
	ErrInvalidTimeout       = errors.New("provider.timeout_sec must be at least 1")
	ErrInvalidMaxResponse   = errors.New("provider.max_response_kb must be at least 1")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat     = errors.New("logging.format must be 'text' or 'json'")
	ErrInvalidEnvValue      = errors.New("invalid environment override")
)

// Environment variables that override file values.
const (
	EnvAPIKey    = "NEWS_API_KEY"
	EnvBaseURL   = "NEWS_API_BASE_URL"
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
)

// Config represents the complete gateway configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	ListenAddr           string   `yaml:"listen_addr"`
	BasePath             string   `yaml:"base_path"`
	CORSAllowedOrigins   []string `yaml:"cors_allowed_origins"`
	ReadHeaderTimeoutSec int      `yaml:"read_header_timeout_sec"`
	ShutdownTimeoutSec   int      `yaml:"shutdown_timeout_sec"`
	Compress             bool     `yaml:"compress"`
}

// ProviderConfig contains upstream provider settings.
type ProviderConfig struct {
	BaseURL       string `yaml:"base_url"`
	APIKey        string `yaml:"api_key"`
	UserAgent     string `yaml:"user_agent"`
	TimeoutSec    int    `yaml:"timeout_sec"`
	MaxResponseKb int    `yaml:"max_response_kb"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:           ":3000",
			BasePath:             "/api/news",
			CORSAllowedOrigins:   []string{"*"},
			ReadHeaderTimeoutSec: 10,
			ShutdownTimeoutSec:   5,
			Compress:             true,
		},
		Provider: ProviderConfig{
			BaseURL:       "https://newsapi.org/v2",
			UserAgent:     "newsgate/1.0",
			TimeoutSec:    30,
			MaxResponseKb: 10240,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file layered over Default,
// then applies environment overrides. An empty path skips the file.
func LoadConfig(filepath string) (*Config, error) {
	cfg := Default()

	if filepath != "" {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with the environment read through lookup.
// Unset or empty variables leave the current value in place.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)

		return v, ok && v != ""
	}

	if v, ok := get(EnvAPIKey); ok {
		c.Provider.APIKey = v
	}

	if v, ok := get(EnvBaseURL); ok {
		c.Provider.BaseURL = v
	}

	if v, ok := get(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("%w: %s=%q is not a TCP port", ErrInvalidEnvValue, EnvPort, v)
		}

		c.Server.ListenAddr = ":" + strconv.Itoa(port)
	}

	if v, ok := get(EnvLogLevel); ok {
		c.Logging.Level = strings.ToLower(v)
	}

	if v, ok := get(EnvLogFormat); ok {
		c.Logging.Format = strings.ToLower(v)
	}

	return nil
}

// SaveConfig saves configuration to YAML file. The API key is not written.
func (c *Config) SaveConfig(filepath string) error {
	out := *c
	out.Provider.APIKey = ""

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration. A missing API key is not an error
// here; the provider adapter refuses to start without one.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return ErrMissingListenAddr
	}

	bp := c.Server.BasePath
	if !strings.HasPrefix(bp, "/") || (len(bp) > 1 && strings.HasSuffix(bp, "/")) {
		return fmt.Errorf("%w: %q", ErrInvalidBasePath, bp)
	}

	if c.Server.ReadHeaderTimeoutSec < 1 {
		return ErrInvalidHeaderTimeout
	}

	if c.Server.ShutdownTimeoutSec < 0 {
		return ErrInvalidShutdown
	}

	u, err := url.Parse(c.Provider.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.Provider.BaseURL)
	}

	if c.Provider.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Provider.MaxResponseKb < 1 {
		return ErrInvalidMaxResponse
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// GetTimeout returns the upstream request timeout.
func (p *ProviderConfig) GetTimeout() time.Duration {
	return time.Duration(p.TimeoutSec) * time.Second
}

// MaxResponseBytes returns the cap applied to upstream response bodies.
func (p *ProviderConfig) MaxResponseBytes() int64 {
	return int64(p.MaxResponseKb) * 1024
}

// GetReadHeaderTimeout returns the listener's header read timeout.
func (s *ServerConfig) GetReadHeaderTimeout() time.Duration {
	return time.Duration(s.ReadHeaderTimeoutSec) * time.Second
}

// GetShutdownTimeout returns the grace period for in-flight requests.
func (s *ServerConfig) GetShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSec) * time.Second
}

// String returns a string representation of the config without secrets.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Listen: %s, BasePath: %s, Provider: %s, APIKeySet: %t}",
		c.Server.ListenAddr,
		c.Server.BasePath,
		c.Provider.BaseURL,
		c.Provider.APIKey != "",
	)
}
