package models

import (
	"time"

	"github.com/google/uuid"
)

// PollTick records the outcome of one poller tick
type PollTick struct {
	ID             uuid.UUID     `json:"id"`
	Resource       string        `json:"resource"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration"`
	Success        bool          `json:"success"`
	Error          string        `json:"error,omitempty"`
	SyncInProgress bool          `json:"sync_in_progress"`
	NextDelay      time.Duration `json:"next_delay"`
}
