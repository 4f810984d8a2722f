package poller

import (
	"time"

	"github.com/Kamar-Folarin/coverage-monitor/internal/config"
)

// IntervalPolicy picks the delay before the next tick
type IntervalPolicy struct {
	Idle   time.Duration
	Active time.Duration
}

// PolicyFrom converts an interval config into a policy
func PolicyFrom(cfg config.IntervalConfig) IntervalPolicy {
	return IntervalPolicy{Idle: cfg.Idle, Active: cfg.Active}
}

// Next returns Active while a sync is running and Idle otherwise
func (p IntervalPolicy) Next(inProgress bool) time.Duration {
	if inProgress {
		return p.Active
	}
	return p.Idle
}
