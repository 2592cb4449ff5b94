package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range []string{EnvAPIKey, EnvBaseURL, EnvPort, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
	}
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

const validConfigYAML = `
server:
  listen_addr: ":8080"
  base_path: "/v1/news"
  cors_allowed_origins: ["https://example.com"]
provider:
  base_url: "http://localhost:9999/v2"
  api_key: "file-key"
  timeout_sec: 5
logging:
  level: "debug"
  format: "json"
`

func TestLoadConfig_Valid(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(createTempConfigFile(t, validConfigYAML))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.Server.ListenAddr)
	}

	if cfg.Server.BasePath != "/v1/news" {
		t.Errorf("BasePath = %q, want /v1/news", cfg.Server.BasePath)
	}

	if cfg.Provider.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key", cfg.Provider.APIKey)
	}

	if cfg.Provider.GetTimeout() != 5*time.Second {
		t.Errorf("GetTimeout = %v, want 5s", cfg.Provider.GetTimeout())
	}

	// Unset keys keep their defaults.
	if cfg.Provider.MaxResponseKb != 10240 {
		t.Errorf("MaxResponseKb = %d, want default 10240", cfg.Provider.MaxResponseKb)
	}

	if cfg.Server.ShutdownTimeoutSec != 5 {
		t.Errorf("ShutdownTimeoutSec = %d, want default 5", cfg.Server.ShutdownTimeoutSec)
	}
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.ListenAddr != ":3000" {
		t.Errorf("ListenAddr = %q, want :3000", cfg.Server.ListenAddr)
	}

	if cfg.Server.BasePath != "/api/news" {
		t.Errorf("BasePath = %q, want /api/news", cfg.Server.BasePath)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_BadPortFailsFast(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "http")

	_, err := LoadConfig("")
	if !errors.Is(err, ErrInvalidEnvValue) {
		t.Fatalf("err = %v, want ErrInvalidEnvValue", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()

	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvAPIKey:    " secret ",
		EnvBaseURL:   "http://127.0.0.1:8081",
		EnvPort:      "4000",
		EnvLogLevel:  "DEBUG",
		EnvLogFormat: "",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Provider.APIKey != "secret" {
		t.Errorf("APIKey = %q, want secret", cfg.Provider.APIKey)
	}

	if cfg.Provider.BaseURL != "http://127.0.0.1:8081" {
		t.Errorf("BaseURL = %q", cfg.Provider.BaseURL)
	}

	if cfg.Server.ListenAddr != ":4000" {
		t.Errorf("ListenAddr = %q, want :4000", cfg.Server.ListenAddr)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}

	if cfg.Logging.Format != "text" {
		t.Errorf("Format = %q, want untouched text", cfg.Logging.Format)
	}
}

func TestApplyEnv_PortOutOfRange(t *testing.T) {
	for _, port := range []string{"0", "70000", "-1", "abc"} {
		cfg := Default()
		if err := cfg.ApplyEnv(envMap(map[string]string{EnvPort: port})); !errors.Is(err, ErrInvalidEnvValue) {
			t.Errorf("PORT=%s: err = %v, want ErrInvalidEnvValue", port, err)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"defaults", func(*Config) {}, nil},
		{"missing api key is allowed", func(c *Config) { c.Provider.APIKey = "" }, nil},
		{"root base path", func(c *Config) { c.Server.BasePath = "/" }, nil},
		{"no listen addr", func(c *Config) { c.Server.ListenAddr = "" }, ErrMissingListenAddr},
		{"relative base path", func(c *Config) { c.Server.BasePath = "api/news" }, ErrInvalidBasePath},
		{"trailing slash", func(c *Config) { c.Server.BasePath = "/api/news/" }, ErrInvalidBasePath},
		{"header timeout", func(c *Config) { c.Server.ReadHeaderTimeoutSec = 0 }, ErrInvalidHeaderTimeout},
		{"shutdown timeout", func(c *Config) { c.Server.ShutdownTimeoutSec = -1 }, ErrInvalidShutdown},
		{"ftp base url", func(c *Config) { c.Provider.BaseURL = "ftp://newsapi.org" }, ErrInvalidBaseURL},
		{"relative base url", func(c *Config) { c.Provider.BaseURL = "/v2" }, ErrInvalidBaseURL},
		{"provider timeout", func(c *Config) { c.Provider.TimeoutSec = 0 }, ErrInvalidTimeout},
		{"max response", func(c *Config) { c.Provider.MaxResponseKb = 0 }, ErrInvalidMaxResponse},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}

				return
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfig_SaveConfigOmitsAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Provider.APIKey = "do-not-persist"

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if strings.Contains(string(data), "do-not-persist") {
		t.Error("saved config contains the API key")
	}

	if cfg.Provider.APIKey != "do-not-persist" {
		t.Error("SaveConfig mutated the receiver")
	}
}

func TestConfig_StringHidesAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Provider.APIKey = "super-secret"

	s := cfg.String()
	if strings.Contains(s, "super-secret") {
		t.Errorf("String() leaks the API key: %s", s)
	}

	if !strings.Contains(s, "APIKeySet: true") {
		t.Errorf("String() = %s, want APIKeySet: true", s)
	}
}

func TestDurations(t *testing.T) {
	cfg := Default()

	if got := cfg.Server.GetReadHeaderTimeout(); got != 10*time.Second {
		t.Errorf("GetReadHeaderTimeout = %v, want 10s", got)
	}

	if got := cfg.Server.GetShutdownTimeout(); got != 5*time.Second {
		t.Errorf("GetShutdownTimeout = %v, want 5s", got)
	}

	if got := cfg.Provider.MaxResponseBytes(); got != 10240*1024 {
		t.Errorf("MaxResponseBytes = %d", got)
	}
}
