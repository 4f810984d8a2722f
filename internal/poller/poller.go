// Package poller runs one adaptive refresh loop per dashboard resource, sleeping
// for the active or idle interval depending on whether a backend sync is running
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
)

// ErrSkipped is returned by a FetchFunc that has nothing to fetch this tick
var ErrSkipped = errors.New("poll skipped")

// FetchFunc loads the current value of a resource
type FetchFunc[T any] func(ctx context.Context) (T, error)

// TickRecorder journals poll ticks
type TickRecorder interface {
	RecordTick(ctx context.Context, tick models.PollTick) error
}

// Snapshot is the latest known state of a polled resource
type Snapshot[T any] struct {
	Data      T         `json:"data"`
	HasData   bool      `json:"has_data"`
	FetchedAt time.Time `json:"fetched_at"`
	Error     string    `json:"error,omitempty"`
	ErrorAt   time.Time `json:"error_at,omitempty"`
	Ticks     int       `json:"ticks"`
}

// Options configures a Poller
type Options[T any] struct {
	Name   string
	Fetch  FetchFunc[T]
	Policy IntervalPolicy
	// InProgress reports the sync flag after a tick
	InProgress func() bool
	// OnSuccess runs on the poll goroutine after every successful tick
	OnSuccess func(Snapshot[T])
	Recorder  TickRecorder
	Logger    *logrus.Logger
}

// Poller refreshes a single resource on an adaptive schedule
type Poller[T any] struct {
	opts Options[T]

	invalidate chan struct{}

	mu        sync.RWMutex
	snapshot  Snapshot[T]
	nextDelay time.Duration
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates a stopped poller
func New[T any](opts Options[T]) *Poller[T] {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Poller[T]{
		opts:       opts,
		invalidate: make(chan struct{}, 1),
	}
}

// Name returns the resource name used in logs and the tick journal
func (p *Poller[T]) Name() string {
	return p.opts.Name
}

// Start launches the poll loop with an immediate first tick
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop cancels the loop and waits for it to exit
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Invalidate requests an immediate tick, coalescing repeated calls
func (p *Poller[T]) Invalidate() {
	select {
	case p.invalidate <- struct{}{}:
	default:
	}
}

// Snapshot returns the latest state
func (p *Poller[T]) Snapshot() Snapshot[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// NextDelay returns the delay chosen after the most recent tick
func (p *Poller[T]) NextDelay() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.nextDelay
}

func (p *Poller[T]) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	logger := p.opts.Logger.WithField("resource", p.opts.Name)
	logger.Debug("Poll loop started")

	for {
		tick, ok := p.tick(ctx)
		if ctx.Err() != nil {
			logger.Debug("Poll loop stopped")
			return
		}

		inProgress := p.inProgress()
		delay := p.opts.Policy.Next(inProgress)
		p.mu.Lock()
		p.nextDelay = delay
		p.mu.Unlock()

		if ok {
			tick.SyncInProgress = inProgress
			tick.NextDelay = delay
			p.record(ctx, logger, tick)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Debug("Poll loop stopped")
			return
		case <-p.invalidate:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// tick runs one fetch and reports false when it was skipped or cancelled
func (p *Poller[T]) tick(ctx context.Context) (models.PollTick, bool) {
	started := time.Now()
	data, err := p.opts.Fetch(ctx)

	if ctx.Err() != nil || errors.Is(err, ErrSkipped) {
		return models.PollTick{}, false
	}

	tick := models.PollTick{
		ID:        uuid.New(),
		Resource:  p.opts.Name,
		StartedAt: started,
		Duration:  time.Since(started),
		Success:   err == nil,
	}

	p.mu.Lock()
	p.snapshot.Ticks++
	if err != nil {
		p.snapshot.Error = err.Error()
		p.snapshot.ErrorAt = time.Now()
		tick.Error = err.Error()
	} else {
		p.snapshot.Data = data
		p.snapshot.HasData = true
		p.snapshot.FetchedAt = time.Now()
		p.snapshot.Error = ""
		p.snapshot.ErrorAt = time.Time{}
	}
	snapshot := p.snapshot
	p.mu.Unlock()

	if err != nil {
		p.opts.Logger.WithFields(logrus.Fields{
			"resource": p.opts.Name,
			"action":   "poll",
		}).WithError(err).Warn("Poll tick failed, keeping previous data")
		return tick, true
	}

	if p.opts.OnSuccess != nil {
		p.opts.OnSuccess(snapshot)
	}
	return tick, true
}

func (p *Poller[T]) inProgress() bool {
	if p.opts.InProgress == nil {
		return false
	}
	return p.opts.InProgress()
}

func (p *Poller[T]) record(ctx context.Context, logger *logrus.Entry, tick models.PollTick) {
	if p.opts.Recorder == nil {
		return
	}
	if err := p.opts.Recorder.RecordTick(ctx, tick); err != nil && ctx.Err() == nil {
		logger.WithError(err).Warn("Failed to record poll tick")
	}
}
