package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port               string           `yaml:"port"`
	DBConnectionString string           `yaml:"db_connection_string"`
	CoverageDays       int              `yaml:"coverage_days"`
	ListCap            int              `yaml:"list_cap"`
	TickRetention      time.Duration    `yaml:"tick_retention"`
	CORSAllowedOrigins []string         `yaml:"cors_allowed_origins"`
	MetricsAPI         MetricsAPIConfig `yaml:"metrics_api"`
	Poll               PollConfig       `yaml:"poll"`
	Log                LogConfig        `yaml:"log"`
}

// LogConfig controls logger level and optional rotated file output
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the configuration used before any file or env overrides
func Default() *Config {
	return &Config{
		Port:          "8080",
		CoverageDays:  90,
		ListCap:       50,
		TickRetention: 7 * 24 * time.Hour,
		MetricsAPI:    *DefaultMetricsAPIConfig(),
		Poll:          *DefaultPollConfig(),
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// Load builds the configuration from defaults, CONFIG_FILE and the environment
func Load() (*Config, error) {
	cfg := Default()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var err error

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBConnectionString = getEnv("DB_CONNECTION_STRING", cfg.DBConnectionString)
	cfg.MetricsAPI.BaseURL = strings.TrimRight(getEnv("METRICS_API_URL", cfg.MetricsAPI.BaseURL), "/")
	cfg.MetricsAPI.Token = getEnv("METRICS_API_TOKEN", cfg.MetricsAPI.Token)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.CORSAllowedOrigins = splitList(origins)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"COVERAGE_DAYS", &cfg.CoverageDays},
		{"LIST_CAP", &cfg.ListCap},
		{"LOG_MAX_SIZE_MB", &cfg.Log.MaxSizeMB},
		{"LOG_MAX_BACKUPS", &cfg.Log.MaxBackups},
		{"LOG_MAX_AGE_DAYS", &cfg.Log.MaxAgeDays},
	}
	for _, v := range ints {
		if *v.dst, err = getEnvAsInt(v.key, *v.dst); err != nil {
			return err
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"METRICS_API_TIMEOUT", &cfg.MetricsAPI.Timeout},
		{"TICK_RETENTION", &cfg.TickRetention},
		{"STATUS_POLL_IDLE", &cfg.Poll.Status.Idle},
		{"STATUS_POLL_ACTIVE", &cfg.Poll.Status.Active},
		{"COVERAGE_POLL_IDLE", &cfg.Poll.Coverage.Idle},
		{"COVERAGE_POLL_ACTIVE", &cfg.Poll.Coverage.Active},
		{"INDEX_POLL_IDLE", &cfg.Poll.Index.Idle},
		{"INDEX_POLL_ACTIVE", &cfg.Poll.Index.Active},
	}
	for _, v := range durations {
		if *v.dst, err = getEnvAsDuration(v.key, *v.dst); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks the values that have no usable fallback
func (c *Config) Validate() error {
	if c.MetricsAPI.BaseURL == "" {
		return fmt.Errorf("METRICS_API_URL must be set")
	}
	if c.CoverageDays <= 0 {
		return fmt.Errorf("coverage days must be positive, got %d", c.CoverageDays)
	}
	return c.Poll.Validate()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
