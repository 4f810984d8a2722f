package poller

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/coverage-monitor/internal/config"
	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
	"github.com/Kamar-Folarin/coverage-monitor/internal/reconcile"
)

// Resource names used in logs and the tick journal
const (
	ResourceStatus   = "status"
	ResourceCoverage = "coverage"
	ResourceIndex    = "index"
)

// Source is the upstream the monitor polls
type Source interface {
	GetSyncStatus(ctx context.Context) (*models.SyncStatus, error)
	GetCoverageBundle(ctx context.Context, days int) (*models.CoverageBundle, error)
	ListIndexedRepositories(ctx context.Context) ([]models.IndexedRepository, error)
}

// MonitorConfig configures a SyncMonitor
type MonitorConfig struct {
	Poll         config.PollConfig
	CoverageDays int
	Recorder     TickRecorder
}

// SyncMonitor owns the poll loops and the per-repository detail store
type SyncMonitor struct {
	status   *Poller[*models.SyncStatus]
	coverage *Poller[*models.CoverageBundle]
	index    *Poller[[]models.IndexedRepository]
	details  *reconcile.Store
	logger   *logrus.Logger

	mu                sync.Mutex
	coverageFetchedAt time.Time
	greptileConnected bool
	stopped           bool
}

// NewSyncMonitor wires the three loops around source. details may be nil
func NewSyncMonitor(source Source, details *reconcile.Store, cfg MonitorConfig, logger *logrus.Logger) *SyncMonitor {
	m := &SyncMonitor{
		details: details,
		logger:  logger,
	}

	m.status = New(Options[*models.SyncStatus]{
		Name:       ResourceStatus,
		Fetch:      source.GetSyncStatus,
		Policy:     PolicyFrom(cfg.Poll.Status),
		InProgress: m.InProgress,
		OnSuccess:  m.onStatus,
		Recorder:   cfg.Recorder,
		Logger:     logger,
	})

	m.coverage = New(Options[*models.CoverageBundle]{
		Name: ResourceCoverage,
		Fetch: func(ctx context.Context) (*models.CoverageBundle, error) {
			return source.GetCoverageBundle(ctx, cfg.CoverageDays)
		},
		Policy:     PolicyFrom(cfg.Poll.Coverage),
		InProgress: m.InProgress,
		OnSuccess:  m.onCoverage,
		Recorder:   cfg.Recorder,
		Logger:     logger,
	})

	m.index = New(Options[[]models.IndexedRepository]{
		Name: ResourceIndex,
		Fetch: func(ctx context.Context) ([]models.IndexedRepository, error) {
			if !m.GreptileConnected() {
				return nil, ErrSkipped
			}
			return source.ListIndexedRepositories(ctx)
		},
		Policy:     PolicyFrom(cfg.Poll.Index),
		InProgress: m.InProgress,
		Recorder:   cfg.Recorder,
		Logger:     logger,
	})

	return m
}

// Start launches all loops
func (m *SyncMonitor) Start(ctx context.Context) {
	m.logger.WithField("action", "start_monitor").Info("Starting sync monitor")
	m.status.Start(ctx)
	m.coverage.Start(ctx)
	m.index.Start(ctx)
}

// Stop tears down every loop and the detail store
func (m *SyncMonitor) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	m.mu.Unlock()

	m.status.Stop()
	m.coverage.Stop()
	m.index.Stop()
	if m.details != nil {
		m.details.Close()
	}
	m.logger.WithField("action", "stop_monitor").Info("Sync monitor stopped")
}

// Revalidate refreshes every resource now
func (m *SyncMonitor) Revalidate() {
	m.status.Invalidate()
	m.coverage.Invalidate()
	m.index.Invalidate()
}

// InProgress reports the sync flag of the latest status snapshot
func (m *SyncMonitor) InProgress() bool {
	snap := m.status.Snapshot()
	return snap.HasData && snap.Data != nil && snap.Data.SyncInProgress
}

// GreptileConnected reports whether the indexing connector is connected
func (m *SyncMonitor) GreptileConnected() bool {
	snap := m.status.Snapshot()
	return snap.HasData && snap.Data != nil && snap.Data.GreptileConnected
}

// Status returns the latest sync status snapshot
func (m *SyncMonitor) Status() Snapshot[*models.SyncStatus] {
	return m.status.Snapshot()
}

// Coverage returns the latest coverage snapshot
func (m *SyncMonitor) Coverage() Snapshot[*models.CoverageBundle] {
	return m.coverage.Snapshot()
}

// Index returns the latest index batch snapshot
func (m *SyncMonitor) Index() Snapshot[[]models.IndexedRepository] {
	return m.index.Snapshot()
}

// Details returns the per-repository detail store
func (m *SyncMonitor) Details() *reconcile.Store {
	return m.details
}

// NextDelays returns the delay each loop chose after its latest tick
func (m *SyncMonitor) NextDelays() map[string]time.Duration {
	return map[string]time.Duration{
		ResourceStatus:   m.status.NextDelay(),
		ResourceCoverage: m.coverage.NextDelay(),
		ResourceIndex:    m.index.NextDelay(),
	}
}

// onCoverage refreshes status when coverage changes after the first load
func (m *SyncMonitor) onCoverage(snap Snapshot[*models.CoverageBundle]) {
	m.mu.Lock()
	previous := m.coverageFetchedAt
	m.coverageFetchedAt = snap.FetchedAt
	m.mu.Unlock()

	if !previous.IsZero() && !previous.Equal(snap.FetchedAt) {
		m.status.Invalidate()
	}
}

// onStatus starts an index fetch as soon as the indexing connector shows up
func (m *SyncMonitor) onStatus(snap Snapshot[*models.SyncStatus]) {
	connected := snap.Data != nil && snap.Data.GreptileConnected

	m.mu.Lock()
	becameConnected := connected && !m.greptileConnected
	m.greptileConnected = connected
	m.mu.Unlock()

	if becameConnected {
		m.index.Invalidate()
	}
}
