package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/Kamar-Folarin/coverage-monitor/internal/catalog"
	"github.com/Kamar-Folarin/coverage-monitor/internal/coverage"
	apperrors "github.com/Kamar-Folarin/coverage-monitor/internal/errors"
	"github.com/Kamar-Folarin/coverage-monitor/internal/listcap"
	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
	"github.com/Kamar-Folarin/coverage-monitor/internal/progress"
	"github.com/Kamar-Folarin/coverage-monitor/internal/reconcile"
)

// Repository list orderings
const (
	SortByPct  = "pct"
	SortByName = "name"
)

// CoverageView is the chart series plus its column totals
type CoverageView struct {
	Points    []models.CoverageDataPoint `json:"points"`
	Totals    models.CoverageDataPoint   `json:"totals"`
	FetchedAt *time.Time                 `json:"fetched_at,omitempty"`
	Error     string                     `json:"error,omitempty"`
}

// ConnectorView is one connector card
type ConnectorView struct {
	catalog.Entry
	Progress   int        `json:"progress"`
	Reported   bool       `json:"reported"`
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
}

// RepoRow is one repository sync row
type RepoRow struct {
	Name           string `json:"name"`
	TotalUnits     int    `json:"total_units"`
	CompletedUnits int    `json:"completed_units"`
	Pct            int    `json:"pct"`
}

// CappedList is a capped list with its truncation notice
type CappedList[T any] struct {
	listcap.Capped[T]
	Notice string `json:"notice,omitempty"`
}

func newCappedList[T any](c listcap.Capped[T]) CappedList[T] {
	return CappedList[T]{Capped: c, Notice: c.Notice()}
}

// BuildCoverage merges the daily series into chart points
func BuildCoverage(daily models.DailyCoverage) CoverageView {
	points := coverage.Aggregate(daily)
	return CoverageView{
		Points: points,
		Totals: coverage.Totals(points),
	}
}

// BuildConnectors returns the known connectors followed by unknown reported ones
func BuildConnectors(status *models.SyncStatus, totals *models.CoverageTotals, index []models.IndexedRepository) []ConnectorView {
	in := progress.FromSnapshots(status, totals, index)

	names := catalog.Names()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}
	if totals != nil {
		for _, conn := range totals.Connectors {
			if !seen[conn.Name] {
				seen[conn.Name] = true
				names = append(names, conn.Name)
			}
		}
	}

	views := make([]ConnectorView, 0, len(names))
	for _, name := range names {
		view := ConnectorView{
			Entry:    catalog.Lookup(name),
			Progress: progress.For(name, in),
		}
		if conn, ok := totals.Connector(name); ok {
			view.Reported = true
			view.LastSyncAt = conn.LastSyncAt
			if conn.DisplayName != "" && !view.Known {
				view.DisplayName = conn.DisplayName
			}
		}
		views = append(views, view)
	}
	return views
}

// BuildRepoList caps the repository rows, ordered by sortBy
func BuildRepoList(repos []models.RepoProgress, limit int, sortBy string) (CappedList[RepoRow], error) {
	rows := make([]RepoRow, len(repos))
	for i, r := range repos {
		rows[i] = RepoRow{
			Name:           r.Name,
			TotalUnits:     r.TotalUnits,
			CompletedUnits: r.CompletedUnits,
			Pct:            r.Pct(),
		}
	}

	var less func(a, b RepoRow) bool
	switch strings.ToLower(sortBy) {
	case "", SortByPct:
		less = func(a, b RepoRow) bool {
			if a.Pct != b.Pct {
				return a.Pct > b.Pct
			}
			return a.Name < b.Name
		}
	case SortByName:
		less = func(a, b RepoRow) bool { return a.Name < b.Name }
	default:
		return CappedList[RepoRow]{}, apperrors.NewValidationError(
			fmt.Sprintf("unknown sort %q, expected %s or %s", sortBy, SortByPct, SortByName), nil)
	}

	return newCappedList(listcap.Apply(rows, limit, less)), nil
}

// BuildIndexList reconciles the batch with fetched details, sorted and capped
func BuildIndexList(batch []models.IndexedRepository, details map[string]reconcile.DetailState, limit int) CappedList[reconcile.EntityStatus] {
	entities := reconcile.Reconcile(batch, details)
	return newCappedList(listcap.Apply(entities, limit, func(a, b reconcile.EntityStatus) bool {
		return a.Repository < b.Repository
	}))
}
