package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.CatalogAPI.BaseURL != "https://api.escuelajs.co/api/v1" {
		t.Errorf("CatalogAPI.BaseURL = %q, want the public API default", cfg.CatalogAPI.BaseURL)
	}
	if cfg.CatalogAPI.Timeout != 0 {
		t.Errorf("CatalogAPI.Timeout = %v, want 0 (no timeout)", cfg.CatalogAPI.Timeout)
	}
	if cfg.View.PageSize != 10 {
		t.Errorf("View.PageSize = %d, want %d", cfg.View.PageSize, 10)
	}
	if !cfg.Rate.Enabled {
		t.Error("Rate.Enabled = false, want true by default")
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 100)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	clearEnv(t)
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("CATALOG_API_URL", "https://staging.example.com/api/v1")
	os.Setenv("VIEW_PAGE_SIZE", "25")
	os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("CATALOG_API_URL")
		os.Unsetenv("VIEW_PAGE_SIZE")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.CatalogAPI.BaseURL != "https://staging.example.com/api/v1" {
		t.Errorf("CatalogAPI.BaseURL = %q", cfg.CatalogAPI.BaseURL)
	}
	if cfg.View.PageSize != 25 {
		t.Errorf("View.PageSize = %d, want %d", cfg.View.PageSize, 25)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_Duration(t *testing.T) {
	clearEnv(t)
	os.Setenv("SERVER_READ_TIMEOUT", "45s")
	os.Setenv("CATALOG_API_TIMEOUT", "1m30s")
	defer func() {
		os.Unsetenv("SERVER_READ_TIMEOUT")
		os.Unsetenv("CATALOG_API_TIMEOUT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.CatalogAPI.Timeout != 90*time.Second {
		t.Errorf("CatalogAPI.Timeout = %v, want %v", cfg.CatalogAPI.Timeout, 90*time.Second)
	}
}

func TestLoad_InvalidInteger(t *testing.T) {
	clearEnv(t)
	os.Setenv("SERVER_PORT", "not-a-number")
	defer os.Unsetenv("SERVER_PORT")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for non-numeric SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("error should mention SERVER_PORT: %v", err)
	}
}

func TestLoad_InvalidBool(t *testing.T) {
	clearEnv(t)
	os.Setenv("RATE_LIMIT_ENABLED", "maybe")
	defer os.Unsetenv("RATE_LIMIT_ENABLED")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for invalid RATE_LIMIT_ENABLED")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 99999

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid port")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("error should mention SERVER_PORT: %v", err)
	}
}

func TestValidate_RelativeAPIURL(t *testing.T) {
	cfg := validConfig()
	cfg.CatalogAPI.BaseURL = "/api/v1"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for a relative CATALOG_API_URL")
	}
	if !strings.Contains(err.Error(), "CATALOG_API_URL") {
		t.Errorf("error should mention CATALOG_API_URL: %v", err)
	}
}

func TestValidate_ZeroPageSize(t *testing.T) {
	cfg := validConfig()
	cfg.View.PageSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for zero page size")
	}
	if !strings.Contains(err.Error(), "VIEW_PAGE_SIZE") {
		t.Errorf("error should mention VIEW_PAGE_SIZE: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Errorf("error should mention LOG_LEVEL: %v", err)
	}
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.View.PageSize = -1
	cfg.Logging.Format = "yaml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"SERVER_PORT", "VIEW_PAGE_SIZE", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"localhost", 443, "localhost:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		got := cfg.Addr()
		if got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

// validConfig returns a configuration that passes Validate.
func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0", Port: 8080,
			ReadTimeout: 15 * time.Second, WriteTimeout: 30 * time.Second,
			IdleTimeout: time.Minute, ShutdownTimeout: 30 * time.Second,
		},
		CatalogAPI: CatalogAPIConfig{BaseURL: "https://api.escuelajs.co/api/v1"},
		View:       ViewConfig{PageSize: 10},
		Rate:       RateLimitConfig{Enabled: true, RequestsPerMinute: 100},
		Logging:    LoggingConfig{Level: "info", Format: "text"},
	}
}

// clearEnv unsets every variable the loader reads so one test's
// overrides cannot leak into another.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"SERVER_HOST", "SERVER_PORT",
		"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
		"CATALOG_API_URL", "CATALOG_API_TIMEOUT", "CATALOG_API_DEBUG",
		"VIEW_PAGE_SIZE",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_REQUESTS_PER_MINUTE",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		os.Unsetenv(name)
	}
}
