package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// RepoProgress tracks per-repository sync completion
type RepoProgress struct {
	Name           string `json:"name"`
	TotalUnits     int    `json:"total_units"`
	CompletedUnits int    `json:"completed_units"`
}

// Pct returns the rounded completion percentage; 0 when either side is 0
func (r RepoProgress) Pct() int {
	if r.CompletedUnits <= 0 || r.TotalUnits <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(r.CompletedUnits) / float64(r.TotalUnits)))
}

// TeamProgress is one issue-tracker team
type TeamProgress struct {
	Name        string `json:"name"`
	IssuesCount int    `json:"issues_count"`
}

// SyncStatus is the backend's view of sync activity
type SyncStatus struct {
	SyncInProgress         bool           `json:"sync_in_progress"`
	CurrentJob             *string        `json:"current_job"`
	TasksRemaining         int            `json:"tasks_remaining"`
	IsComplete             bool           `json:"is_complete"`
	PRsWithoutDetails      int            `json:"prs_without_details"`
	Repositories           []RepoProgress `json:"repositories"`
	LinearTeams            []TeamProgress `json:"linear_teams"`
	CursorConnected        bool           `json:"cursor_connected"`
	CursorTeamMembersCount *int           `json:"cursor_team_members_count"`
	GreptileConnected      bool           `json:"greptile_connected"`
	GreptileReposCount     *int           `json:"greptile_repos_count"`
}

// String returns the JSON string representation of the sync status
func (s *SyncStatus) String() string {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal sync status: %v"}`, err)
	}
	return string(data)
}
