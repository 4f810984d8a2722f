package config

import (
	"fmt"
	"time"
)

// IntervalConfig holds the idle and active poll delays
type IntervalConfig struct {
	Idle   time.Duration `yaml:"idle"`
	Active time.Duration `yaml:"active"`
}

// PollConfig holds the polling cadence of each resource
type PollConfig struct {
	Status   IntervalConfig `yaml:"status"`
	Coverage IntervalConfig `yaml:"coverage"`
	Index    IntervalConfig `yaml:"index"`
}

// DefaultPollConfig returns the default polling configuration
func DefaultPollConfig() *PollConfig {
	return &PollConfig{
		Status:   IntervalConfig{Idle: 15 * time.Second, Active: 5 * time.Second},
		Coverage: IntervalConfig{Idle: 30 * time.Second, Active: 5 * time.Second},
		Index:    IntervalConfig{Idle: 30 * time.Second, Active: 5 * time.Second},
	}
}

// Validate rejects non-positive intervals
func (p *PollConfig) Validate() error {
	for name, ic := range map[string]IntervalConfig{"status": p.Status, "coverage": p.Coverage, "index": p.Index} {
		if ic.Idle <= 0 || ic.Active <= 0 {
			return fmt.Errorf("%s poll intervals must be positive (idle %v, active %v)", name, ic.Idle, ic.Active)
		}
	}
	return nil
}
