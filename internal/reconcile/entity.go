package reconcile

import (
	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
	"github.com/Kamar-Folarin/coverage-monitor/pkg/utils"
)

// EntityStatus is the reconciled display state of one repository
type EntityStatus struct {
	Repository      string       `json:"repository"`
	Branch          string       `json:"branch,omitempty"`
	CachedStatus    string       `json:"cached_status"`
	CachedError     string       `json:"cached_error,omitempty"`
	EffectiveStatus string       `json:"effective_status"`
	Detail          *DetailState `json:"detail,omitempty"`
	Notice          *Notice      `json:"notice,omitempty"`
}

// Reconcile combines the batch listing with fetched details, matching rows
// on their normalized owner/repo key without modifying the batch
func Reconcile(batch []models.IndexedRepository, details map[string]DetailState) []EntityStatus {
	out := make([]EntityStatus, 0, len(batch))
	for _, repo := range batch {
		key := utils.NormalizeRepoKey(repo.Repository)
		status := EntityStatus{
			Repository:      key,
			Branch:          repo.Branch,
			CachedStatus:    repo.Status,
			CachedError:     repo.ErrorMessage,
			EffectiveStatus: repo.Status,
		}

		if state, ok := details[key]; ok {
			status.Detail = &state
			status.EffectiveStatus = Effective(repo.Status, &state)
			notice := Describe(repo.Status, state)
			status.Notice = &notice
		}

		out = append(out, status)
	}
	return out
}
