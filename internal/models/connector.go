package models

import "time"

// Connector identifies one upstream data source reported by the coverage endpoint
type Connector struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	LastSyncAt  *time.Time `json:"last_sync_at"`
}

// CoverageTotals is the coverage summary returned by the metrics API
type CoverageTotals struct {
	TotalPullRequests int         `json:"total_pull_requests"`
	TotalCommits      int         `json:"total_commits"`
	TotalWorkflowRuns int         `json:"total_workflow_runs"`
	TotalDevelopers   int         `json:"total_developers"`
	Connectors        []Connector `json:"connectors"`
}

// Connector returns the connector with the given name, if reported
func (c *CoverageTotals) Connector(name string) (Connector, bool) {
	if c == nil {
		return Connector{}, false
	}
	for _, conn := range c.Connectors {
		if conn.Name == name {
			return conn, true
		}
	}
	return Connector{}, false
}

// CoverageBundle is what a single coverage poll tick fetches
type CoverageBundle struct {
	Totals CoverageTotals `json:"totals"`
	Daily  DailyCoverage  `json:"daily"`
}
