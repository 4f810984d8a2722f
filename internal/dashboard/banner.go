package dashboard

import (
	"fmt"

	"github.com/Kamar-Folarin/coverage-monitor/internal/catalog"
	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
)

// Banner is the sync-in-progress strip shown above the dashboard
type Banner struct {
	Visible        bool   `json:"visible"`
	Text           string `json:"text,omitempty"`
	Job            string `json:"job,omitempty"`
	JobLabel       string `json:"job_label,omitempty"`
	TasksRemaining int    `json:"tasks_remaining"`
}

// BuildBanner describes the running sync, if any
func BuildBanner(status *models.SyncStatus) Banner {
	if status == nil || !status.SyncInProgress {
		return Banner{}
	}

	banner := Banner{
		Visible:        true,
		TasksRemaining: status.TasksRemaining,
	}

	text := "Sync in progress"
	if status.CurrentJob != nil && *status.CurrentJob != "" {
		banner.Job = *status.CurrentJob
		banner.JobLabel = catalog.JobLabel(banner.Job)
		text = fmt.Sprintf("%s: %s", text, banner.JobLabel)
	}

	switch status.TasksRemaining {
	case 0:
		banner.Text = text
	case 1:
		banner.Text = text + " (1 task remaining)"
	default:
		banner.Text = fmt.Sprintf("%s (%d tasks remaining)", text, status.TasksRemaining)
	}
	return banner
}
