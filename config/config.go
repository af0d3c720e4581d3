/*
config.go - Server configuration from environment variables

PURPOSE:
  Central place for runtime configuration. Every knob has a sensible
  default so the server runs with no environment at all.

VARIABLES:
  PORT             HTTP listen port            (default: 8080)
  DB_PATH          SQLite database file        (default: projections.db)
  LOG_LEVEL        logrus level name           (default: info)
  REFRESH_CRON     scenario refresh schedule   (default: 0 2 * * *)
  REFRESH_ENABLED  "true"/"false"              (default: true)
*/
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Config holds application configuration.
type Config struct {
	Port           string
	DBPath         string
	LogLevel       logrus.Level
	RefreshCron    string
	RefreshEnabled bool
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	refreshEnabled, err := strconv.ParseBool(getEnv("REFRESH_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_ENABLED: %w", err)
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "projections.db"),
		LogLevel:       level,
		RefreshCron:    getEnv("REFRESH_CRON", "0 2 * * *"),
		RefreshEnabled: refreshEnabled,
	}

	if cfg.DBPath == "" {
		return nil, fmt.Errorf("DB_PATH is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
