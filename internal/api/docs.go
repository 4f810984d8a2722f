package api

import (
	"github.com/Kamar-Folarin/coverage-monitor/internal/dashboard"
	"github.com/Kamar-Folarin/coverage-monitor/internal/reconcile"

	_ "github.com/Kamar-Folarin/coverage-monitor/docs"
)

// ErrorResponse represents an API error
// @Description Error response from the API
type ErrorResponse struct {
	// Error message
	Error string `json:"error" example:"UNAVAILABLE: coverage not loaded yet"`
}

// MessageResponse acknowledges an accepted request
type MessageResponse struct {
	Message string `json:"message" example:"revalidation requested"`
}

// DetailsRequestResponse is returned when live details are requested
// @Description Whether a new live status fetch was started
type DetailsRequestResponse struct {
	// Repository key in owner/repo form
	Repository string `json:"repository" example:"acme/widgets"`
	// False when the repository was already loading or resolved
	Started bool `json:"started" example:"true"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Uptime string `json:"uptime" example:"1h2m3s"`
}

// RepoListResponse is the capped repository progress list
// @Description Visible rows, total row count and the number of omitted rows
type RepoListResponse = dashboard.CappedList[dashboard.RepoRow]

// IndexListResponse is the capped reconciled index status list
type IndexListResponse = dashboard.CappedList[reconcile.EntityStatus]
