package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

var configEnv = []string{
	"PORT", "SHUTDOWN_TIMEOUT", "KV_BACKEND", "SQLITE_PATH", "STORE_TIMEOUT",
	"AUTH_MODE", "LOG_LEVEL", "FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "GOOGLE_APPLICATION_CREDENTIALS",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.Store.Backend != BackendMemory || cfg.Store.SQLitePath != "little-lemon.db" {
		t.Errorf("unexpected store config %+v", cfg.Store)
	}
	if cfg.Store.Timeout != 5*time.Second || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected timeouts %v %v", cfg.Store.Timeout, cfg.ShutdownTimeout)
	}
	if cfg.Auth.Mode != AuthInstallation {
		t.Errorf("expected installation auth, got %s", cfg.Auth.Mode)
	}
	if cfg.NeedsFirebase() {
		t.Error("defaults should not need Firebase")
	}
	if cfg.LogLevel != zapcore.InfoLevel {
		t.Errorf("expected info log level, got %v", cfg.LogLevel)
	}
}

func TestLoadLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != zapcore.DebugLevel {
		t.Fatalf("expected debug, got %v", cfg.LogLevel)
	}

	t.Setenv("LOG_LEVEL", "chatty")
	if _, err := Load(missingEnvFile(t)); err == nil || !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Fatalf("expected LOG_LEVEL error, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("KV_BACKEND", "firestore")
	t.Setenv("AUTH_MODE", "firebase")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "little-lemon-prod")
	t.Setenv("STORE_TIMEOUT", "750ms")

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.Store.Backend != BackendFirestore || cfg.Auth.Mode != AuthFirebase {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Firebase.ProjectID != "little-lemon-prod" {
		t.Errorf("expected project fallback to GOOGLE_CLOUD_PROJECT, got %q", cfg.Firebase.ProjectID)
	}
	if cfg.Store.Timeout != 750*time.Millisecond {
		t.Errorf("expected 750ms, got %v", cfg.Store.Timeout)
	}
	if !cfg.NeedsFirebase() {
		t.Error("expected NeedsFirebase")
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is set, even to "".
	for _, key := range []string{"KV_BACKEND", "SQLITE_PATH"} {
		_ = os.Unsetenv(key)
	}
	path := filepath.Join(t.TempDir(), "test.env")
	content := "KV_BACKEND=sqlite\nSQLITE_PATH=/tmp/lemon.db\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Backend != BackendSQLite || cfg.Store.SQLitePath != "/tmp/lemon.db" {
		t.Fatalf("expected values from env file, got %+v", cfg.Store)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_TIMEOUT", "soon")
	if _, err := Load(missingEnvFile(t)); err == nil || !strings.Contains(err.Error(), "STORE_TIMEOUT") {
		t.Fatalf("expected STORE_TIMEOUT error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:            "8080",
			ShutdownTimeout: time.Second,
			Store:           StoreConfig{Backend: BackendMemory, Timeout: time.Second},
			Auth:            AuthConfig{Mode: AuthInstallation},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing port", func(c *Config) { c.Port = "" }, "PORT"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }, "KV_BACKEND"},
		{"sqlite without path", func(c *Config) { c.Store.Backend = BackendSQLite }, "SQLITE_PATH"},
		{"unknown auth mode", func(c *Config) { c.Auth.Mode = "apikey" }, "AUTH_MODE"},
		{"firebase without project", func(c *Config) { c.Auth.Mode = AuthFirebase }, "FIREBASE_PROJECT_ID"},
		{"firestore without project", func(c *Config) { c.Store.Backend = BackendFirestore }, "FIREBASE_PROJECT_ID"},
		{"firestore with project", func(c *Config) {
			c.Store.Backend = BackendFirestore
			c.Firebase.ProjectID = "demo"
		}, ""},
		{"zero store timeout", func(c *Config) { c.Store.Timeout = 0 }, "STORE_TIMEOUT"},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }, "SHUTDOWN_TIMEOUT"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
