// Package dashboard assembles the views served by the API and the CLI from
// the latest poll snapshots
package dashboard

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/coverage-monitor/internal/errors"
	"github.com/Kamar-Folarin/coverage-monitor/internal/listcap"
	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
	"github.com/Kamar-Folarin/coverage-monitor/internal/poller"
	"github.com/Kamar-Folarin/coverage-monitor/internal/reconcile"
	"github.com/Kamar-Folarin/coverage-monitor/pkg/utils"
)

// Monitor exposes the poll snapshots
type Monitor interface {
	Status() poller.Snapshot[*models.SyncStatus]
	Coverage() poller.Snapshot[*models.CoverageBundle]
	Index() poller.Snapshot[[]models.IndexedRepository]
	NextDelays() map[string]time.Duration
	Revalidate()
}

// DetailStore holds on-demand live index statuses
type DetailStore interface {
	RequestDetails(repository string) bool
	Get(repository string) (reconcile.DetailState, bool)
	Clear(repository string)
	Snapshot() map[string]reconcile.DetailState
}

// SyncView is the sync status together with its banner and cadence
type SyncView struct {
	Snapshot  poller.Snapshot[*models.SyncStatus] `json:"snapshot"`
	Banner    Banner                              `json:"banner"`
	NextDelay string                              `json:"next_delay"`
}

// Service builds dashboard views
type Service struct {
	monitor Monitor
	details DetailStore
	listCap int
	logger  *logrus.Logger
}

// NewService creates a dashboard service
func NewService(monitor Monitor, details DetailStore, listCap int, logger *logrus.Logger) *Service {
	if listCap <= 0 {
		listCap = listcap.DefaultLimit
	}
	return &Service{
		monitor: monitor,
		details: details,
		listCap: listCap,
		logger:  logger,
	}
}

// Coverage returns the chart view of the latest coverage snapshot
func (s *Service) Coverage() CoverageView {
	snap := s.monitor.Coverage()

	view := BuildCoverage(models.DailyCoverage{})
	if snap.HasData && snap.Data != nil {
		view = BuildCoverage(snap.Data.Daily)
		fetchedAt := snap.FetchedAt
		view.FetchedAt = &fetchedAt
	}
	view.Error = snap.Error
	return view
}

// Totals returns the latest coverage totals
func (s *Service) Totals() (*models.CoverageTotals, error) {
	snap := s.monitor.Coverage()
	if !snap.HasData || snap.Data == nil {
		return nil, notLoaded("coverage", snap.Error)
	}
	totals := snap.Data.Totals
	return &totals, nil
}

// Connectors returns the connector cards with their progress
func (s *Service) Connectors() []ConnectorView {
	var (
		status *models.SyncStatus
		totals *models.CoverageTotals
		index  []models.IndexedRepository
	)

	if snap := s.monitor.Status(); snap.HasData {
		status = snap.Data
	}
	if snap := s.monitor.Coverage(); snap.HasData && snap.Data != nil {
		totals = &snap.Data.Totals
	}
	if snap := s.monitor.Index(); snap.HasData {
		index = snap.Data
		if index == nil {
			index = []models.IndexedRepository{}
		}
	}

	return BuildConnectors(status, totals, index)
}

// SyncStatus returns the status snapshot with banner and next delay
func (s *Service) SyncStatus() SyncView {
	snap := s.monitor.Status()

	view := SyncView{
		Snapshot:  snap,
		NextDelay: s.monitor.NextDelays()[poller.ResourceStatus].String(),
	}
	if snap.HasData {
		view.Banner = BuildBanner(snap.Data)
	}
	return view
}

// Revalidate refreshes every resource
func (s *Service) Revalidate() {
	s.logger.WithField("action", "revalidate").Info("Revalidating dashboard data")
	s.monitor.Revalidate()
}

// Repositories returns the capped repository sync list
func (s *Service) Repositories(limit int, sortBy string) (CappedList[RepoRow], error) {
	snap := s.monitor.Status()
	if !snap.HasData || snap.Data == nil {
		return CappedList[RepoRow]{}, notLoaded("sync status", snap.Error)
	}
	return BuildRepoList(snap.Data.Repositories, s.limit(limit), sortBy)
}

// IndexRepositories returns the capped, reconciled index list
func (s *Service) IndexRepositories(limit int) CappedList[reconcile.EntityStatus] {
	return BuildIndexList(s.monitor.Index().Data, s.details.Snapshot(), s.limit(limit))
}

// RequestDetails starts a live status fetch for a repository
func (s *Service) RequestDetails(ref string) (bool, error) {
	key, err := repoKey(ref)
	if err != nil {
		return false, err
	}

	started := s.details.RequestDetails(key)
	s.logger.WithFields(logrus.Fields{
		"repository": key,
		"started":    started,
		"action":     "request_details",
	}).Debug("Requested index details")
	return started, nil
}

// Details returns the reconciled state of one repository
func (s *Service) Details(ref string) (*reconcile.EntityStatus, error) {
	key, err := repoKey(ref)
	if err != nil {
		return nil, err
	}

	state, ok := s.details.Get(key)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no details requested for %s", key), nil)
	}

	batch := []models.IndexedRepository{{Repository: key}}
	for _, repo := range s.monitor.Index().Data {
		if utils.NormalizeRepoKey(repo.Repository) == key {
			batch[0] = repo
			break
		}
	}

	entity := reconcile.Reconcile(batch, map[string]reconcile.DetailState{key: state})[0]
	return &entity, nil
}

// ClearDetails discards the stored details of one repository
func (s *Service) ClearDetails(ref string) error {
	key, err := repoKey(ref)
	if err != nil {
		return err
	}
	s.details.Clear(key)
	return nil
}

// limit picks the requested list size, never above the configured cap
func (s *Service) limit(limit int) int {
	if limit <= 0 || limit > s.listCap {
		return s.listCap
	}
	return limit
}

func repoKey(ref string) (string, error) {
	key, err := utils.RepoKey(ref)
	if err != nil {
		return "", apperrors.NewValidationError(err.Error(), err)
	}
	return key, nil
}

func notLoaded(resource, lastError string) error {
	if lastError != "" {
		return apperrors.NewUnavailableError(fmt.Sprintf("%s not loaded yet: %s", resource, lastError), nil)
	}
	return apperrors.NewUnavailableError(fmt.Sprintf("%s not loaded yet", resource), nil)
}
