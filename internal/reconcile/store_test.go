package reconcile

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
)

const (
	testRepo    = "acme/api"
	testTimeout = 2 * time.Second
	testTick    = 5 * time.Millisecond
)

// MockFetcher is a mock implementation of StatusFetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) GetIndexStatus(ctx context.Context, repository string) (*models.LiveIndexStatus, error) {
	args := m.Called(ctx, repository)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LiveIndexStatus), args.Error(1)
}

func newTestStore(fetcher StatusFetcher) *Store {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))
	return NewStore(fetcher, logger)
}

func waitResolved(t *testing.T, s *Store, repo string) DetailState {
	t.Helper()
	require.Eventually(t, func() bool {
		state, ok := s.Get(repo)
		return ok && !state.Loading
	}, testTimeout, testTick)
	state, _ := s.Get(repo)
	return state
}

func TestStore_RequestDetailsIsIdempotentWhileLoading(t *testing.T) {
	fetcher := new(MockFetcher)
	release := make(chan time.Time)
	fetcher.On("GetIndexStatus", mock.Anything, testRepo).
		WaitUntil(release).
		Return(&models.LiveIndexStatus{Status: "completed"}, nil).
		Once()

	store := newTestStore(fetcher)
	defer store.Close()

	assert.True(t, store.RequestDetails(testRepo))
	assert.False(t, store.RequestDetails(testRepo))

	state, ok := store.Get(testRepo)
	require.True(t, ok)
	assert.True(t, state.Loading)

	close(release)
	state = waitResolved(t, store, testRepo)
	require.NotNil(t, state.Data)
	assert.Equal(t, "completed", state.Data.Status)
	assert.NotNil(t, state.ResolvedAt)

	assert.False(t, store.RequestDetails(testRepo), "resolved entries are not refetched")
	fetcher.AssertNumberOfCalls(t, "GetIndexStatus", 1)
}

func TestStore_RequestAfterClearFetchesAgain(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("GetIndexStatus", mock.Anything, testRepo).
		Return(&models.LiveIndexStatus{Status: "failed", ErrorMessage: "clone failed"}, nil).
		Once()
	fetcher.On("GetIndexStatus", mock.Anything, testRepo).
		Return(&models.LiveIndexStatus{Status: "completed"}, nil).
		Once()

	store := newTestStore(fetcher)
	defer store.Close()

	require.True(t, store.RequestDetails(testRepo))
	first := waitResolved(t, store, testRepo)
	assert.Equal(t, "failed", first.Data.Status)

	store.Clear(testRepo)
	_, ok := store.Get(testRepo)
	assert.False(t, ok)

	require.True(t, store.RequestDetails(testRepo))
	second := waitResolved(t, store, testRepo)
	assert.Equal(t, "completed", second.Data.Status)

	fetcher.AssertNumberOfCalls(t, "GetIndexStatus", 2)
}

func TestStore_FailureIsStoredWithoutRetry(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("GetIndexStatus", mock.Anything, testRepo).
		Return(nil, errors.New("connection reset")).
		Once()

	store := newTestStore(fetcher)
	defer store.Close()

	store.RequestDetails(testRepo)
	state := waitResolved(t, store, testRepo)
	assert.Equal(t, "connection reset", state.Error)
	assert.Nil(t, state.Data)

	time.Sleep(20 * time.Millisecond)
	fetcher.AssertNumberOfCalls(t, "GetIndexStatus", 1)

	notice := Describe(StatusError, state)
	assert.Equal(t, NoticeLoadError, notice.Kind)
	assert.Equal(t, "could not load details: connection reset", notice.Message)
}

func TestStore_ClearWhileLoadingKeepsOneInFlight(t *testing.T) {
	fetcher := new(MockFetcher)
	release := make(chan time.Time)
	fetcher.On("GetIndexStatus", mock.Anything, testRepo).
		WaitUntil(release).
		Return(&models.LiveIndexStatus{Status: "indexed"}, nil).
		Once()

	store := newTestStore(fetcher)
	defer store.Close()

	require.True(t, store.RequestDetails(testRepo))
	store.Clear(testRepo)
	require.True(t, store.RequestDetails(testRepo))

	close(release)
	state := waitResolved(t, store, testRepo)
	assert.Equal(t, "indexed", state.Data.Status)
	fetcher.AssertNumberOfCalls(t, "GetIndexStatus", 1)
}

func TestStore_ResultForClearedRepositoryIsDropped(t *testing.T) {
	fetcher := new(MockFetcher)
	release := make(chan time.Time)
	fetcher.On("GetIndexStatus", mock.Anything, testRepo).
		WaitUntil(release).
		Return(&models.LiveIndexStatus{Status: "indexed"}, nil).
		Once()

	store := newTestStore(fetcher)
	store.RequestDetails(testRepo)
	store.Clear(testRepo)
	close(release)
	store.Close()

	_, ok := store.Get(testRepo)
	assert.False(t, ok)
	assert.Empty(t, store.Snapshot())
}

func TestStore_CloseCancelsAndSuppresses(t *testing.T) {
	fetcher := new(MockFetcher)
	started := make(chan struct{})
	fetcher.On("GetIndexStatus", mock.Anything, testRepo).
		Run(func(args mock.Arguments) {
			close(started)
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.Canceled).
		Once()

	store := newTestStore(fetcher)
	store.RequestDetails(testRepo)
	select {
	case <-started:
	case <-time.After(testTimeout):
		t.Fatal("fetch did not start")
	}

	store.Close()

	state, ok := store.Get(testRepo)
	require.True(t, ok)
	assert.True(t, state.Loading, "result after close is not applied")
	assert.False(t, store.RequestDetails("acme/web"))
	fetcher.AssertNumberOfCalls(t, "GetIndexStatus", 1)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("GetIndexStatus", mock.Anything, testRepo).
		Return(&models.LiveIndexStatus{Status: "completed"}, nil)

	store := newTestStore(fetcher)
	defer store.Close()

	store.RequestDetails(testRepo)
	waitResolved(t, store, testRepo)

	snap := store.Snapshot()
	entry := snap[testRepo]
	entry.Data.Status = "mutated"

	state, _ := store.Get(testRepo)
	assert.Equal(t, "completed", state.Data.Status)
}
