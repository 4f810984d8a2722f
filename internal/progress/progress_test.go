package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Kamar-Folarin/coverage-monitor/internal/catalog"
	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
)

func TestFor_CodeHost(t *testing.T) {
	tests := []struct {
		name     string
		repos    []models.RepoProgress
		expected int
	}{
		{name: "no repositories", repos: nil, expected: 0},
		{name: "zero total", repos: []models.RepoProgress{{Name: "a"}, {Name: "b"}}, expected: 0},
		{
			name: "summed across repositories",
			repos: []models.RepoProgress{
				{Name: "a", TotalUnits: 10, CompletedUnits: 10},
				{Name: "b", TotalUnits: 20, CompletedUnits: 5},
			},
			expected: 50,
		},
		{
			name:     "rounds",
			repos:    []models.RepoProgress{{Name: "a", TotalUnits: 3, CompletedUnits: 2}},
			expected: 67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, For(catalog.GitHub, Inputs{Repositories: tt.repos}))
		})
	}
}

func TestFor_CI(t *testing.T) {
	assert.Equal(t, 0, For(catalog.GitHubActions, Inputs{}))
	assert.Equal(t, 100, For(catalog.GitHubActions, Inputs{WorkflowRuns: 1}))
}

func TestFor_IssueTracker(t *testing.T) {
	assert.Equal(t, 0, For(catalog.Linear, Inputs{}))

	teams := []models.TeamProgress{
		{Name: "core", IssuesCount: 12},
		{Name: "infra", IssuesCount: 0},
		{Name: "web", IssuesCount: 3},
	}
	assert.Equal(t, 67, For(catalog.Linear, Inputs{LinearTeams: teams}))
}

func TestFor_AIUsageIgnoresSubMetrics(t *testing.T) {
	assert.Equal(t, 0, For(catalog.Cursor, Inputs{}))
	assert.Equal(t, 100, For(catalog.Cursor, Inputs{CursorConnected: true}))
	assert.Equal(t, 100, For(catalog.Cursor, Inputs{
		CursorConnected: true,
		Repositories:    []models.RepoProgress{{Name: "a", TotalUnits: 10}},
	}))
}

func TestFor_ReviewIndexing(t *testing.T) {
	tests := []struct {
		name     string
		in       Inputs
		expected int
	}{
		{name: "not connected", in: Inputs{GreptileIndex: &IndexSummary{Indexed: 3, Total: 3}}, expected: 0},
		{name: "connected without details", in: Inputs{GreptileConnected: true}, expected: 100},
		{name: "connected with empty details", in: Inputs{GreptileConnected: true, GreptileIndex: &IndexSummary{}}, expected: 100},
		{name: "connected with details", in: Inputs{GreptileConnected: true, GreptileIndex: &IndexSummary{Indexed: 1, Total: 4}}, expected: 25},
		{name: "connected none indexed", in: Inputs{GreptileConnected: true, GreptileIndex: &IndexSummary{Total: 4}}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, For(catalog.Greptile, tt.in))
		})
	}
}

func TestFor_ErrorTracking(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 0, For(catalog.Sentry, Inputs{}))
	assert.Equal(t, 100, For(catalog.Sentry, Inputs{SentryLastSyncAt: &now}))
}

func TestFor_UnknownConnectorUsesConnectedFlag(t *testing.T) {
	assert.Equal(t, 0, For("pagerduty", Inputs{}))
	assert.Equal(t, 100, For("pagerduty", Inputs{Connected: map[string]bool{"pagerduty": true}}))
}

// Zero denominators mean "no data yet" for ratio formulas but "nothing to
// measure" for the binary ones; both behaviours are kept
func TestCompute_ZeroDenominatorAsymmetry(t *testing.T) {
	now := time.Now()
	in := Inputs{
		CursorConnected:   true,
		GreptileConnected: true,
		SentryLastSyncAt:  &now,
	}

	got := Compute(in)
	assert.Equal(t, map[string]int{
		catalog.GitHub:        0,
		catalog.GitHubActions: 0,
		catalog.Linear:        0,
		catalog.Cursor:        100,
		catalog.Greptile:      100,
		catalog.Sentry:        100,
	}, got)
}

func TestFromSnapshots(t *testing.T) {
	synced := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	status := &models.SyncStatus{
		Repositories:      []models.RepoProgress{{Name: "api", TotalUnits: 4, CompletedUnits: 3}},
		LinearTeams:       []models.TeamProgress{{Name: "core", IssuesCount: 1}},
		CursorConnected:   true,
		GreptileConnected: true,
	}
	totals := &models.CoverageTotals{
		TotalWorkflowRuns: 7,
		Connectors: []models.Connector{
			{Name: catalog.Sentry, LastSyncAt: &synced},
			{Name: "opsgenie"},
		},
	}
	index := []models.IndexedRepository{
		{Repository: "org/api", Status: "COMPLETED"},
		{Repository: "org/web", Status: "error"},
	}

	in := FromSnapshots(status, totals, index)
	assert.Equal(t, &IndexSummary{Indexed: 1, Total: 2}, in.GreptileIndex)
	assert.Equal(t, &synced, in.SentryLastSyncAt)
	assert.True(t, in.Connected["opsgenie"])

	got := Compute(in, append(catalog.Names(), "opsgenie")...)
	assert.Equal(t, 75, got[catalog.GitHub])
	assert.Equal(t, 100, got[catalog.GitHubActions])
	assert.Equal(t, 100, got[catalog.Linear])
	assert.Equal(t, 100, got[catalog.Cursor])
	assert.Equal(t, 50, got[catalog.Greptile])
	assert.Equal(t, 100, got[catalog.Sentry])
	assert.Equal(t, 100, got["opsgenie"])

	empty := FromSnapshots(nil, nil, nil)
	assert.Nil(t, empty.GreptileIndex)
	assert.Equal(t, 0, For(catalog.Greptile, empty))
}
