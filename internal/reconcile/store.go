package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
)

// StatusFetcher fetches the live index status of one repository
type StatusFetcher interface {
	GetIndexStatus(ctx context.Context, repository string) (*models.LiveIndexStatus, error)
}

// DetailState is the loading/error/data tri-state of one repository
type DetailState struct {
	Repository  string                  `json:"repository"`
	Loading     bool                    `json:"loading"`
	Error       string                  `json:"error,omitempty"`
	Data        *models.LiveIndexStatus `json:"data,omitempty"`
	RequestedAt time.Time               `json:"requested_at"`
	ResolvedAt  *time.Time              `json:"resolved_at,omitempty"`
}

// Store holds live detail results keyed by repository, one in-flight fetch per key
type Store struct {
	fetcher StatusFetcher
	logger  *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	entries  map[string]*DetailState
	inflight map[string]bool
	closed   bool
}

// NewStore creates a detail store that fetches through fetcher
func NewStore(fetcher StatusFetcher, logger *logrus.Logger) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		fetcher:  fetcher,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		entries:  make(map[string]*DetailState),
		inflight: make(map[string]bool),
	}
}

// RequestDetails marks repository as loading and fetches its live status
func (s *Store) RequestDetails(repository string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	if _, exists := s.entries[repository]; exists {
		return false
	}

	s.entries[repository] = &DetailState{
		Repository:  repository,
		Loading:     true,
		RequestedAt: time.Now(),
	}

	// A fetch started before a Clear is still running; its result fills this entry
	if s.inflight[repository] {
		return true
	}

	s.inflight[repository] = true
	s.wg.Add(1)
	go s.fetch(repository)
	return true
}

func (s *Store) fetch(repository string) {
	defer s.wg.Done()

	logger := s.logger.WithFields(logrus.Fields{
		"repository": repository,
		"action":     "fetch_index_status",
	})

	live, err := s.fetcher.GetIndexStatus(s.ctx, repository)

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inflight, repository)
	if s.closed {
		return
	}

	entry, exists := s.entries[repository]
	if !exists || !entry.Loading {
		logger.Debug("Dropping index status for cleared repository")
		return
	}

	now := time.Now()
	entry.Loading = false
	entry.ResolvedAt = &now
	if err != nil {
		logger.WithError(err).Warn("Failed to fetch live index status")
		entry.Error = err.Error()
		return
	}
	if live == nil {
		live = &models.LiveIndexStatus{}
	}
	entry.Data = live
	logger.WithField("status", live.Status).Debug("Fetched live index status")
}

// Clear discards any stored result or loading flag for repository
func (s *Store) Clear(repository string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, repository)
}

// Get returns a copy of the state of repository
func (s *Store) Get(repository string) (DetailState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[repository]
	if !exists {
		return DetailState{}, false
	}
	return copyState(entry), true
}

// Snapshot returns a copy of all states
func (s *Store) Snapshot() map[string]DetailState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]DetailState, len(s.entries))
	for key, entry := range s.entries {
		out[key] = copyState(entry)
	}
	return out
}

// Close cancels in-flight fetches and waits for them to return
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
}

func copyState(entry *DetailState) DetailState {
	state := *entry
	if entry.Data != nil {
		data := *entry.Data
		state.Data = &data
	}
	if entry.ResolvedAt != nil {
		resolved := *entry.ResolvedAt
		state.ResolvedAt = &resolved
	}
	return state
}
