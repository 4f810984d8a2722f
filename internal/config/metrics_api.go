package config

import "time"

// MetricsAPIConfig holds the upstream metrics API settings
type MetricsAPIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultMetricsAPIConfig returns the default metrics API configuration
func DefaultMetricsAPIConfig() *MetricsAPIConfig {
	return &MetricsAPIConfig{
		BaseURL: "http://localhost:8000/api/v1",
		Timeout: 30 * time.Second,
	}
}
