package config

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config holds the application configuration. Values come from an
// optional YAML file with environment-variable overrides on top; the
// zero config runs a local SQLite-backed server with no MQTT ingest
// and no auth.
type Config struct {
	Port string `yaml:"port"`

	// Storage: "sqlite" (default) or "postgres".
	DBDriver    string `yaml:"db_driver"`
	DBPath      string `yaml:"db_path"`      // sqlite file
	PostgresDSN string `yaml:"postgres_dsn"` // postgres connection string

	// Ingest. Empty broker disables the MQTT subscriber.
	MQTTBroker   string `yaml:"mqtt_broker"`
	MQTTClientID string `yaml:"mqtt_client_id"`

	// Auth. Empty secret disables bearer-token checks.
	JWTSecret string `yaml:"jwt_secret"`

	// Logging
	LogLevel      string `yaml:"log_level"`
	LogFilePath   string `yaml:"log_file_path"`
	LogMaxAgeDays int    `yaml:"log_max_age_days"`

	// Rate limiting in requests per minute per client IP. Zero means
	// unset and takes the default; a negative value disables limiting.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
}

// Load reads the config file at path (skipped when empty), then applies
// environment overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.DBDriver, "DB_DRIVER")
	overrideString(&cfg.DBPath, "DB_PATH")
	overrideString(&cfg.PostgresDSN, "POSTGRES_DSN")
	overrideString(&cfg.MQTTBroker, "MQTT_BROKER")
	overrideString(&cfg.MQTTClientID, "MQTT_CLIENT_ID")
	overrideString(&cfg.JWTSecret, "JWT_SECRET")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.LogFilePath, "LOG_FILE_PATH")

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = ":8080"
	}
	if c.DBDriver == "" {
		c.DBDriver = "sqlite"
	}
	if c.DBPath == "" {
		c.DBPath = "./data/fleet.db"
	}
	if c.MQTTClientID == "" {
		c.MQTTClientID = "fleet-tracking-server"
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 30
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 600
	}
}

// GetLogLevel maps the configured level name onto a logrus level.
func (c *Config) GetLogLevel() log.Level {
	switch c.LogLevel {
	case "DEBUG", "debug":
		return log.DebugLevel
	case "WARN", "warn":
		return log.WarnLevel
	case "ERROR", "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
