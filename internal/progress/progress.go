// Package progress computes the 0-100 completion percentage of each connector
// using the formula the catalog assigns to it
package progress

import (
	"math"
	"time"

	"github.com/Kamar-Folarin/coverage-monitor/internal/catalog"
	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
	"github.com/Kamar-Folarin/coverage-monitor/internal/reconcile"
)

// IndexSummary is the repo-level detail of the review-indexing connector
type IndexSummary struct {
	Indexed int `json:"indexed"`
	Total   int `json:"total"`
}

// Inputs are the raw summary fields the formulas read
type Inputs struct {
	Repositories      []models.RepoProgress
	WorkflowRuns      int
	LinearTeams       []models.TeamProgress
	CursorConnected   bool
	GreptileConnected bool
	// GreptileIndex is nil until repo-level index data has loaded
	GreptileIndex    *IndexSummary
	SentryLastSyncAt *time.Time
	// Connected marks connectors without a dedicated formula as connected
	Connected map[string]bool
}

// For returns the progress percentage of the named connector
func For(name string, in Inputs) int {
	entry := catalog.Lookup(name)

	switch entry.Formula {
	case catalog.FormulaRepoRatio:
		return repoRatio(in.Repositories)
	case catalog.FormulaAnyRuns:
		return binary(in.WorkflowRuns > 0)
	case catalog.FormulaTeamsWithIssues:
		return teamsWithIssues(in.LinearTeams)
	case catalog.FormulaIndexedRatio:
		return indexedRatio(in.GreptileConnected, in.GreptileIndex)
	case catalog.FormulaLastSync:
		return binary(in.SentryLastSyncAt != nil)
	default:
		if name == catalog.Cursor {
			return binary(in.CursorConnected)
		}
		return binary(in.Connected[name])
	}
}

// Compute returns the percentage for each name, or for every known
// connector when no names are given
func Compute(in Inputs, names ...string) map[string]int {
	if len(names) == 0 {
		names = catalog.Names()
	}
	out := make(map[string]int, len(names))
	for _, name := range names {
		out[name] = For(name, in)
	}
	return out
}

// FromSnapshots builds Inputs from the latest snapshots, any of which may be nil
func FromSnapshots(status *models.SyncStatus, totals *models.CoverageTotals, index []models.IndexedRepository) Inputs {
	in := Inputs{Connected: make(map[string]bool)}

	if status != nil {
		in.Repositories = status.Repositories
		in.LinearTeams = status.LinearTeams
		in.CursorConnected = status.CursorConnected
		in.GreptileConnected = status.GreptileConnected
	}

	if totals != nil {
		in.WorkflowRuns = totals.TotalWorkflowRuns
		for _, conn := range totals.Connectors {
			in.Connected[conn.Name] = true
		}
		if sentry, ok := totals.Connector(catalog.Sentry); ok {
			in.SentryLastSyncAt = sentry.LastSyncAt
		}
	}

	if index != nil {
		summary := SummarizeIndex(index)
		in.GreptileIndex = &summary
	}

	return in
}

// SummarizeIndex counts repositories whose batch status is success-like
func SummarizeIndex(repos []models.IndexedRepository) IndexSummary {
	summary := IndexSummary{Total: len(repos)}
	for _, r := range repos {
		if reconcile.IsSuccessLike(r.Status) {
			summary.Indexed++
		}
	}
	return summary
}

func repoRatio(repos []models.RepoProgress) int {
	var total, completed int
	for _, r := range repos {
		total += r.TotalUnits
		completed += r.CompletedUnits
	}
	return ratio(completed, total)
}

func teamsWithIssues(teams []models.TeamProgress) int {
	withIssues := 0
	for _, t := range teams {
		if t.IssuesCount > 0 {
			withIssues++
		}
	}
	return ratio(withIssues, len(teams))
}

// Connected with nothing loaded yet counts as provisionally complete
func indexedRatio(connected bool, summary *IndexSummary) int {
	if !connected {
		return 0
	}
	if summary == nil || summary.Total == 0 {
		return 100
	}
	return ratio(summary.Indexed, summary.Total)
}

// ratio is 0 for a zero denominator: no data yet is not complete
func ratio(num, den int) int {
	if den <= 0 || num <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(num) / float64(den)))
	if pct > 100 {
		return 100
	}
	return pct
}

func binary(ok bool) int {
	if ok {
		return 100
	}
	return 0
}
