// Package reconcile compares the batch index status of a repository with
// an on-demand live status and decides what to display
package reconcile

import (
	"fmt"
	"strings"

	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
)

// Display statuses
const (
	StatusError    = "error"
	StatusStale    = "stale"
	StatusNotFound = "not_found"
)

var successLike = map[string]bool{
	"completed": true,
	"indexed":   true,
	"submitted": true,
}

var inProgress = map[string]bool{
	"queued":      true,
	"pending":     true,
	"processing":  true,
	"cloning":     true,
	"in_progress": true,
}

// LiveClass is the category of a live status
type LiveClass string

const (
	LiveSuccess    LiveClass = "success"
	LiveNotFound   LiveClass = "not_found"
	LiveInProgress LiveClass = "in_progress"
	LiveFailure    LiveClass = "failure"
)

// IsSuccessLike reports whether status means the repository is indexed
func IsSuccessLike(status string) bool {
	return successLike[normalize(status)]
}

// Classify buckets a live status
func Classify(live models.LiveIndexStatus) LiveClass {
	status := normalize(live.Status)
	switch {
	case successLike[status]:
		return LiveSuccess
	case status == StatusNotFound:
		return LiveNotFound
	case inProgress[status]:
		return LiveInProgress
	default:
		return LiveFailure
	}
}

// Effective returns the status to display, turning a batch "error" into "stale"
// when the live status succeeded
func Effective(cached string, state *DetailState) string {
	if normalize(cached) != StatusError || state == nil || state.Data == nil {
		return cached
	}
	if Classify(*state.Data) == LiveSuccess {
		return StatusStale
	}
	return cached
}

// NoticeKind identifies what the detail panel should say
type NoticeKind string

const (
	NoticeNone       NoticeKind = "none"
	NoticeLoading    NoticeKind = "loading"
	NoticeLoadError  NoticeKind = "load_error"
	NoticeFailure    NoticeKind = "failure"
	NoticeStale      NoticeKind = "stale"
	NoticeNotFound   NoticeKind = "not_found"
	NoticeInProgress NoticeKind = "in_progress"
)

// Notice is the user-facing outcome of a detail fetch
type Notice struct {
	Kind         NoticeKind `json:"kind"`
	Message      string     `json:"message,omitempty"`
	Preformatted bool       `json:"preformatted,omitempty"`
	LiveStatus   string     `json:"live_status,omitempty"`
}

// Describe maps a batch status and its detail state to a notice
func Describe(cached string, state DetailState) Notice {
	switch {
	case state.Loading:
		return Notice{Kind: NoticeLoading, Message: "Loading details..."}
	case state.Error != "":
		return Notice{Kind: NoticeLoadError, Message: "could not load details: " + state.Error}
	case state.Data == nil:
		return Notice{Kind: NoticeNone}
	}

	live := *state.Data
	notice := Notice{LiveStatus: live.Status}

	switch Classify(live) {
	case LiveNotFound:
		notice.Kind = NoticeNotFound
		notice.Message = "Repository is not indexed or was not found by the indexing service."
	case LiveSuccess:
		if normalize(cached) != StatusError {
			notice.Kind = NoticeNone
			return notice
		}
		notice.Kind = NoticeStale
		notice.Message = fmt.Sprintf("The cached status is stale: the live status is %q. Refresh the batch status to update it.", live.Status)
	case LiveInProgress:
		notice.Kind = NoticeInProgress
		notice.Message = "Indexing in progress"
		if live.Message != "" {
			notice.Message += ": " + live.Message
		}
	default:
		notice.Kind = NoticeFailure
		switch {
		case live.ErrorMessage != "":
			notice.Message = live.ErrorMessage
			notice.Preformatted = true
		case live.Message != "":
			notice.Message = live.Message
		default:
			notice.Message = "Indexing failed with status " + live.Status
		}
	}
	return notice
}

func normalize(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}
