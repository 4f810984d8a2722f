package poller

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
)

const (
	waitFor  = 2 * time.Second
	pollTick = 5 * time.Millisecond
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))
	return logger
}

type recorder struct {
	mu    sync.Mutex
	ticks []models.PollTick
}

func (r *recorder) RecordTick(_ context.Context, tick models.PollTick) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, tick)
	return nil
}

func (r *recorder) recorded() []models.PollTick {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.PollTick(nil), r.ticks...)
}

func TestIntervalPolicy_Next(t *testing.T) {
	policy := IntervalPolicy{Idle: 15 * time.Second, Active: 5 * time.Second}

	assert.Equal(t, 5*time.Second, policy.Next(true))
	assert.Equal(t, 15*time.Second, policy.Next(false))
}

func TestPoller_NextDelayFollowsSyncFlag(t *testing.T) {
	var inProgress atomic.Bool
	policy := IntervalPolicy{Idle: time.Hour, Active: 30 * time.Minute}

	p := New(Options[int]{
		Name:       "status",
		Fetch:      func(ctx context.Context) (int, error) { return 1, nil },
		Policy:     policy,
		InProgress: inProgress.Load,
		Logger:     quietLogger(),
	})
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return p.NextDelay() == policy.Idle }, waitFor, pollTick)

	inProgress.Store(true)
	p.Invalidate()
	require.Eventually(t, func() bool { return p.NextDelay() == policy.Active }, waitFor, pollTick)

	inProgress.Store(false)
	p.Invalidate()
	require.Eventually(t, func() bool { return p.NextDelay() == policy.Idle }, waitFor, pollTick)
}

func TestPoller_FailureKeepsPreviousData(t *testing.T) {
	var calls atomic.Int32
	p := New(Options[string]{
		Name: "coverage",
		Fetch: func(ctx context.Context) (string, error) {
			if calls.Add(1) == 1 {
				return "first", nil
			}
			return "", errors.New("upstream unavailable")
		},
		Policy: IntervalPolicy{Idle: time.Hour, Active: time.Hour},
		Logger: quietLogger(),
	})
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return p.Snapshot().Ticks == 1 }, waitFor, pollTick)
	first := p.Snapshot()
	assert.True(t, first.HasData)
	assert.Equal(t, "first", first.Data)
	assert.Empty(t, first.Error)

	p.Invalidate()
	require.Eventually(t, func() bool { return p.Snapshot().Ticks == 2 }, waitFor, pollTick)

	second := p.Snapshot()
	assert.Equal(t, "first", second.Data)
	assert.True(t, second.HasData)
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
	assert.Equal(t, "upstream unavailable", second.Error)
	assert.False(t, second.ErrorAt.IsZero())
}

func TestPoller_InvalidateNeverOverlapsTicks(t *testing.T) {
	var (
		active  atomic.Int32
		maxSeen atomic.Int32
		calls   atomic.Int32
	)
	release := make(chan struct{})

	p := New(Options[int]{
		Name: "status",
		Fetch: func(ctx context.Context) (int, error) {
			n := active.Add(1)
			defer active.Add(-1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			if calls.Add(1) == 1 {
				select {
				case <-release:
				case <-ctx.Done():
				}
			}
			return 0, nil
		},
		Policy: IntervalPolicy{Idle: time.Hour, Active: time.Hour},
		Logger: quietLogger(),
	})
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, pollTick)
	for i := 0; i < 10; i++ {
		p.Invalidate()
	}
	close(release)

	require.Eventually(t, func() bool { return p.Snapshot().Ticks == 2 }, waitFor, pollTick)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, int32(1), maxSeen.Load())
}

func TestPoller_StopDiscardsInFlightResult(t *testing.T) {
	started := make(chan struct{})
	p := New(Options[int]{
		Name: "index",
		Fetch: func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			return 42, nil
		},
		Policy: IntervalPolicy{Idle: time.Hour, Active: time.Hour},
		Logger: quietLogger(),
	})
	p.Start(context.Background())

	select {
	case <-started:
	case <-time.After(waitFor):
		t.Fatal("fetch never started")
	}
	p.Stop()

	snap := p.Snapshot()
	assert.False(t, snap.HasData)
	assert.Zero(t, snap.Ticks)

	// Stopping twice is harmless
	p.Stop()
}

func TestPoller_RecordsTicks(t *testing.T) {
	rec := &recorder{}
	var calls atomic.Int32

	p := New(Options[int]{
		Name: "coverage",
		Fetch: func(ctx context.Context) (int, error) {
			if calls.Add(1) == 2 {
				return 0, errors.New("boom")
			}
			return 7, nil
		},
		Policy:     IntervalPolicy{Idle: time.Hour, Active: time.Minute},
		InProgress: func() bool { return true },
		Recorder:   rec,
		Logger:     quietLogger(),
	})
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return len(rec.recorded()) == 1 }, waitFor, pollTick)
	p.Invalidate()
	require.Eventually(t, func() bool { return len(rec.recorded()) == 2 }, waitFor, pollTick)

	ticks := rec.recorded()
	assert.NotEqual(t, uuid.Nil, ticks[0].ID)
	assert.NotEqual(t, ticks[0].ID, ticks[1].ID)
	assert.Equal(t, "coverage", ticks[0].Resource)
	assert.True(t, ticks[0].Success)
	assert.True(t, ticks[0].SyncInProgress)
	assert.Equal(t, time.Minute, ticks[0].NextDelay)
	assert.False(t, ticks[1].Success)
	assert.Equal(t, "boom", ticks[1].Error)
}

func TestPoller_SkippedTickLeavesSnapshot(t *testing.T) {
	rec := &recorder{}
	var calls atomic.Int32

	p := New(Options[int]{
		Name: "index",
		Fetch: func(ctx context.Context) (int, error) {
			calls.Add(1)
			return 0, ErrSkipped
		},
		Policy:   IntervalPolicy{Idle: time.Hour, Active: time.Hour},
		Recorder: rec,
		Logger:   quietLogger(),
	})
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, pollTick)
	require.Eventually(t, func() bool { return p.NextDelay() == time.Hour }, waitFor, pollTick)

	snap := p.Snapshot()
	assert.False(t, snap.HasData)
	assert.Zero(t, snap.Ticks)
	assert.Empty(t, snap.Error)
	assert.Empty(t, rec.recorded())
}
