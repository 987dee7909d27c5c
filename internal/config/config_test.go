package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("AUTH_SESSION_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 3000)
	}
	if cfg.Auth.SessionName != "flexnit_access_token" {
		t.Errorf("Auth.SessionName = %q, want %q", cfg.Auth.SessionName, "flexnit_access_token")
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want %v", cfg.Auth.TokenTTL, 24*time.Hour)
	}
	if !cfg.Auth.SecureCookie {
		t.Error("Auth.SecureCookie = false, want true")
	}
	if cfg.Import.MaxFileSize != 104857600 {
		t.Errorf("Import.MaxFileSize = %d, want %d", cfg.Import.MaxFileSize, 104857600)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:4200" {
		t.Errorf("Server.AllowedOrigins = %v, want [http://localhost:4200]", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AUTH_SECURE_COOKIE", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Auth.SecureCookie {
		t.Error("Auth.SecureCookie = true, want false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	// Test that DB_URL and PORT work as fallbacks
	t.Setenv("DB_URL", "postgres://localhost/alttest")
	t.Setenv("AUTH_SESSION_SECRET", "test-secret")
	t.Setenv("PORT", "5050")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.URL != "postgres://localhost/alttest" {
		t.Errorf("Database.URL = %q, want %q", cfg.Database.URL, "postgres://localhost/alttest")
	}
	if cfg.Server.Port != 5050 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 5050)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("DB_URL")
	os.Unsetenv("AUTH_SESSION_SECRET")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for missing required variables")
	}
}

func TestLoad_Duration(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("AUTH_TOKEN_TTL", "1h30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Auth.TokenTTL != 90*time.Minute {
		t.Errorf("Auth.TokenTTL = %v, want %v", cfg.Auth.TokenTTL, 90*time.Minute)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_HOSTS", "http://localhost:4200, https://flexnit.example.com ,https://staging.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"http://localhost:4200", "https://flexnit.example.com", "https://staging.example.com"}
	if len(cfg.Server.AllowedOrigins) != len(expected) {
		t.Fatalf("AllowedOrigins length = %d, want %d", len(cfg.Server.AllowedOrigins), len(expected))
	}
	for i, v := range expected {
		if cfg.Server.AllowedOrigins[i] != v {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.Server.AllowedOrigins[i], v)
		}
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			ShutdownTimeout: time.Second,
		},
		Database: DatabaseConfig{URL: "postgres://localhost/test", MaxConns: 20, MinConns: 4},
		Auth:     AuthConfig{SessionSecret: "s", SessionName: "flexnit_access_token", TokenTTL: time.Hour},
		Import:   ImportConfig{MaxFileSize: 1, MaxConcurrent: 1, MaxWaitTime: time.Second, Timeout: time.Minute},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
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

func TestValidate_MaxConnsLessThanMinConns(t *testing.T) {
	cfg := validConfig()
	cfg.Database.MaxConns = 2
	cfg.Database.MinConns = 5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for MaxConns < MinConns")
	}
	if !strings.Contains(err.Error(), "DB_MAX_CONNS") {
		t.Errorf("error should mention DB_MAX_CONNS: %v", err)
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

func TestValidate_MissingTokenTTL(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.TokenTTL = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for zero TokenTTL")
	}
	if !strings.Contains(err.Error(), "AUTH_TOKEN_TTL") {
		t.Errorf("error should mention AUTH_TOKEN_TTL: %v", err)
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 3000, "0.0.0.0:3000"},
		{"", 8080, ":8080"},
		{"127.0.0.1", 80, "127.0.0.1:80"},
	}

	for _, tt := range tests {
		c := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := c.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}
