package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamar-Folarin/coverage-monitor/internal/config"
	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
	"github.com/Kamar-Folarin/coverage-monitor/internal/reconcile"
)

type fakeSource struct {
	inProgress atomic.Bool
	greptile   atomic.Bool

	statusCalls   atomic.Int32
	coverageCalls atomic.Int32
	indexCalls    atomic.Int32
}

func (f *fakeSource) GetSyncStatus(ctx context.Context) (*models.SyncStatus, error) {
	f.statusCalls.Add(1)
	return &models.SyncStatus{
		SyncInProgress:    f.inProgress.Load(),
		GreptileConnected: f.greptile.Load(),
	}, nil
}

func (f *fakeSource) GetCoverageBundle(ctx context.Context, days int) (*models.CoverageBundle, error) {
	f.coverageCalls.Add(1)
	return &models.CoverageBundle{}, nil
}

func (f *fakeSource) ListIndexedRepositories(ctx context.Context) ([]models.IndexedRepository, error) {
	f.indexCalls.Add(1)
	return []models.IndexedRepository{{Repository: "acme/widgets", Status: "completed"}}, nil
}

func (f *fakeSource) GetIndexStatus(ctx context.Context, repository string) (*models.LiveIndexStatus, error) {
	return &models.LiveIndexStatus{Status: "completed"}, nil
}

func slowPolls() config.PollConfig {
	slow := config.IntervalConfig{Idle: time.Hour, Active: 30 * time.Minute}
	return config.PollConfig{Status: slow, Coverage: slow, Index: slow}
}

func setupMonitor(t *testing.T, source *fakeSource) *SyncMonitor {
	t.Helper()

	logger := quietLogger()
	details := reconcile.NewStore(source, logger)
	m := NewSyncMonitor(source, details, MonitorConfig{Poll: slowPolls(), CoverageDays: 90}, logger)
	m.Start(context.Background())
	t.Cleanup(m.Stop)
	return m
}

func TestSyncMonitor_IndexWaitsForConnector(t *testing.T) {
	source := &fakeSource{}
	m := setupMonitor(t, source)

	require.Eventually(t, func() bool { return m.Status().HasData }, waitFor, pollTick)
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, source.indexCalls.Load())
	assert.False(t, m.Index().HasData)

	source.greptile.Store(true)
	m.Revalidate()

	require.Eventually(t, func() bool { return m.Index().HasData }, waitFor, pollTick)
	assert.Len(t, m.Index().Data, 1)
}

func TestSyncMonitor_ConnectedAtStartFetchesIndex(t *testing.T) {
	source := &fakeSource{}
	source.greptile.Store(true)
	m := setupMonitor(t, source)

	require.Eventually(t, func() bool { return m.Index().HasData }, waitFor, pollTick)
	assert.True(t, m.GreptileConnected())
}

func TestSyncMonitor_CoverageRefreshInvalidatesStatus(t *testing.T) {
	source := &fakeSource{}
	m := setupMonitor(t, source)

	require.Eventually(t, func() bool {
		return m.Coverage().Ticks == 1 && m.Status().Ticks == 1
	}, waitFor, pollTick)

	// The first coverage load does not trigger a status refresh
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), source.statusCalls.Load())

	m.coverage.Invalidate()
	require.Eventually(t, func() bool { return source.statusCalls.Load() == 2 }, waitFor, pollTick)
}

func TestSyncMonitor_NextDelaysFollowStatus(t *testing.T) {
	source := &fakeSource{}
	source.inProgress.Store(true)
	m := setupMonitor(t, source)

	require.Eventually(t, func() bool {
		return m.NextDelays()[ResourceStatus] == 30*time.Minute
	}, waitFor, pollTick)
	assert.True(t, m.InProgress())

	source.inProgress.Store(false)
	m.Revalidate()
	require.Eventually(t, func() bool {
		return m.NextDelays()[ResourceStatus] == time.Hour
	}, waitFor, pollTick)
}

func TestSyncMonitor_RevalidateRefreshesAll(t *testing.T) {
	source := &fakeSource{}
	m := setupMonitor(t, source)

	require.Eventually(t, func() bool {
		return m.Coverage().Ticks == 1 && m.Status().Ticks >= 1
	}, waitFor, pollTick)
	statusBefore := source.statusCalls.Load()

	m.Revalidate()
	require.Eventually(t, func() bool {
		return source.statusCalls.Load() > statusBefore && source.coverageCalls.Load() >= 2
	}, waitFor, pollTick)
}

func TestSyncMonitor_StopClosesDetails(t *testing.T) {
	source := &fakeSource{}
	logger := quietLogger()
	details := reconcile.NewStore(source, logger)
	m := NewSyncMonitor(source, details, MonitorConfig{Poll: slowPolls(), CoverageDays: 90}, logger)
	m.Start(context.Background())

	require.Eventually(t, func() bool { return m.Status().HasData }, waitFor, pollTick)
	m.Stop()
	m.Stop()

	assert.False(t, details.RequestDetails("acme/widgets"))
	assert.Same(t, details, m.Details())
}
