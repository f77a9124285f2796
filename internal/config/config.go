// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	LogPath               string
	Watch                 bool
	Location              *time.Location
	FailureAlertThreshold float64
	DiagnosticsPath       string
	LogLevel              string
}

// Default values
const (
	defaultLogPath               = "log.csv"
	defaultFailureAlertThreshold = 25.0
	defaultLogLevel              = "info"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	loc, err := getEnvLocation("ACTIVITY_LOG_TIMEZONE", nil)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogPath:               getEnvString("ACTIVITY_LOG_PATH", defaultLogPath),
		Watch:                 getEnvBool("ACTIVITY_LOG_WATCH", true),
		Location:              loc,
		FailureAlertThreshold: getEnvFloat("FAILURE_ALERT_THRESHOLD", defaultFailureAlertThreshold),
		DiagnosticsPath:       getEnvString("LOG_FILE", getDefaultDiagnosticsPath()),
		LogLevel:              getEnvString("LOG_LEVEL", defaultLogLevel),
	}

	if cfg.FailureAlertThreshold < 0 || cfg.FailureAlertThreshold > 100 {
		return nil, fmt.Errorf("FAILURE_ALERT_THRESHOLD must be between 0 and 100, got %g", cfg.FailureAlertThreshold)
	}

	// Ensure diagnostics directory exists
	if cfg.DiagnosticsPath != "" {
		if err := ensureDir(filepath.Dir(cfg.DiagnosticsPath)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "logdash", ".env"),
			filepath.Join(home, ".logdash", ".env"),
		)
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// getDefaultDiagnosticsPath returns the default path for the diagnostic log.
func getDefaultDiagnosticsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "logdash.log"
	}
	return filepath.Join(home, ".config", "logdash", "logdash.log")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts the forms understood by strconv.ParseBool plus "yes"/"no".
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(value), "%"), 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvLocation resolves an IANA timezone name. Empty maps to the default
// and "Local" to time.Local; an unknown zone is a configuration error.
func getEnvLocation(key string, defaultValue *time.Location) (*time.Location, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	if strings.EqualFold(value, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return loc, nil
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
