// Package config loads server settings from the environment. An optional
// .env file is read first; real environment variables take precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Store backends.
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendSQLite    = "sqlite"
)

// Auth modes.
const (
	AuthInstallation = "installation"
	AuthFirebase     = "firebase"
)

// Config holds all configuration for the server.
type Config struct {
	Port            string
	ShutdownTimeout time.Duration
	LogLevel        zapcore.Level
	Store           StoreConfig
	Auth            AuthConfig
	Firebase        FirebaseConfig
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	Backend    string
	SQLitePath string
	// Timeout bounds the store operations of a single request.
	Timeout time.Duration
}

// AuthConfig selects how bearer tokens are verified.
type AuthConfig struct {
	Mode string
}

// FirebaseConfig is only needed by the firebase auth mode and the firestore backend.
type FirebaseConfig struct {
	ProjectID   string
	Credentials string
}

// NeedsFirebase reports whether any configured component uses Firebase.
func (c *Config) NeedsFirebase() bool {
	return c.Auth.Mode == AuthFirebase || c.Store.Backend == BackendFirestore
}

// Load reads the given env files (default ".env"; a missing file is ignored)
// and then builds the configuration from the environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	storeTimeout, err := getEnvAsDuration("STORE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	logLevel, err := zapcore.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: shutdownTimeout,
		LogLevel:        logLevel,
		Store: StoreConfig{
			Backend:    getEnv("KV_BACKEND", BackendMemory),
			SQLitePath: getEnv("SQLITE_PATH", "little-lemon.db"),
			Timeout:    storeTimeout,
		},
		Auth: AuthConfig{
			Mode: getEnv("AUTH_MODE", AuthInstallation),
		},
		Firebase: FirebaseConfig{
			ProjectID:   getEnv("FIREBASE_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
			Credentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFirestore:
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("invalid KV_BACKEND: %s (must be memory, firestore, or sqlite)", c.Store.Backend)
	}
	switch c.Auth.Mode {
	case AuthInstallation, AuthFirebase:
	default:
		return fmt.Errorf("invalid AUTH_MODE: %s (must be installation or firebase)", c.Auth.Mode)
	}
	if c.NeedsFirebase() && c.Firebase.ProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID or GOOGLE_CLOUD_PROJECT is required when Firebase is used")
	}
	if c.Store.Timeout <= 0 {
		return errors.New("STORE_TIMEOUT must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
