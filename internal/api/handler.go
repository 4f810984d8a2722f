package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/coverage-monitor/internal/dashboard"
	apperrors "github.com/Kamar-Folarin/coverage-monitor/internal/errors"
	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
	"github.com/Kamar-Folarin/coverage-monitor/internal/reconcile"
)

// DashboardService builds the views served by the API
type DashboardService interface {
	Coverage() dashboard.CoverageView
	Totals() (*models.CoverageTotals, error)
	Connectors() []dashboard.ConnectorView
	SyncStatus() dashboard.SyncView
	Revalidate()
	Repositories(limit int, sortBy string) (dashboard.CappedList[dashboard.RepoRow], error)
	IndexRepositories(limit int) dashboard.CappedList[reconcile.EntityStatus]
	RequestDetails(ref string) (bool, error)
	Details(ref string) (*reconcile.EntityStatus, error)
	ClearDetails(ref string) error
}

// TickJournal lists recorded poll ticks
type TickJournal interface {
	ListTicks(ctx context.Context, resource string, limit int) ([]models.PollTick, error)
}

type Handler struct {
	dashboard DashboardService
	journal   TickJournal
	logger    *logrus.Logger
	startedAt time.Time
}

// NewHandler creates a handler. journal may be nil when no database is configured
func NewHandler(dashboardService DashboardService, journal TickJournal, logger *logrus.Logger) *Handler {
	return &Handler{
		dashboard: dashboardService,
		journal:   journal,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// GetDailyCoverage godoc
// @Summary Get daily coverage
// @Description Get the merged per-day coverage series of every connector
// @Tags coverage
// @Produce json
// @Success 200 {object} dashboard.CoverageView
// @Router /coverage/daily [get]
func (h *Handler) GetDailyCoverage(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.Coverage())
}

// GetCoverage godoc
// @Summary Get coverage totals
// @Description Get the latest coverage totals and connector list
// @Tags coverage
// @Produce json
// @Success 200 {object} models.CoverageTotals
// @Failure 503 {object} ErrorResponse
// @Router /coverage [get]
func (h *Handler) GetCoverage(c *gin.Context) {
	totals, err := h.dashboard.Totals()
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

// ListConnectors godoc
// @Summary List connectors
// @Description Get every connector with its display attributes and progress percentage
// @Tags connectors
// @Produce json
// @Success 200 {array} dashboard.ConnectorView
// @Router /connectors [get]
func (h *Handler) ListConnectors(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.Connectors())
}

// GetSyncStatus godoc
// @Summary Get sync status
// @Description Get the latest backend sync status with the progress banner and next poll delay
// @Tags sync
// @Produce json
// @Success 200 {object} dashboard.SyncView
// @Router /sync/status [get]
func (h *Handler) GetSyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.SyncStatus())
}

// Revalidate godoc
// @Summary Refresh all data
// @Description Trigger an immediate refresh of status, coverage and index data
// @Tags sync
// @Produce json
// @Success 202 {object} MessageResponse
// @Router /sync/revalidate [post]
func (h *Handler) Revalidate(c *gin.Context) {
	h.dashboard.Revalidate()
	c.JSON(http.StatusAccepted, MessageResponse{Message: "revalidation requested"})
}

// ListTicks godoc
// @Summary List poll ticks
// @Description Get recently journaled poll ticks, newest first
// @Tags sync
// @Produce json
// @Param resource query string false "Resource name" Enums(status, coverage, index)
// @Param limit query int false "Maximum number of ticks" default(100)
// @Success 200 {array} models.PollTick
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /sync/ticks [get]
func (h *Handler) ListTicks(c *gin.Context) {
	if h.journal == nil {
		h.handleError(c, apperrors.NewUnavailableError("tick journal is not configured", nil))
		return
	}

	limit, err := getIntQueryParam(c, "limit", 100)
	if err != nil {
		h.handleError(c, err)
		return
	}

	ticks, err := h.journal.ListTicks(c.Request.Context(), c.Query("resource"), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticks)
}

// ListRepositories godoc
// @Summary List repository sync progress
// @Description Get the capped list of repositories with their sync percentage
// @Tags repositories
// @Produce json
// @Param limit query int false "Maximum number of rows, at most the configured list cap" default(50)
// @Param sort query string false "Ordering" Enums(pct, name) default(pct)
// @Success 200 {object} RepoListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /repositories [get]
func (h *Handler) ListRepositories(c *gin.Context) {
	limit, err := getIntQueryParam(c, "limit", 0)
	if err != nil {
		h.handleError(c, err)
		return
	}

	list, err := h.dashboard.Repositories(limit, c.Query("sort"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListIndexRepositories godoc
// @Summary List index status
// @Description Get the capped list of repositories with cached and reconciled index status
// @Tags index
// @Produce json
// @Param limit query int false "Maximum number of rows, at most the configured list cap" default(50)
// @Success 200 {object} IndexListResponse
// @Failure 400 {object} ErrorResponse
// @Router /index/repositories [get]
func (h *Handler) ListIndexRepositories(c *gin.Context) {
	limit, err := getIntQueryParam(c, "limit", 0)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.dashboard.IndexRepositories(limit))
}

// RequestDetails godoc
// @Summary Request live index status
// @Description Start fetching the live index status of one repository
// @Tags index
// @Produce json
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Success 202 {object} DetailsRequestResponse
// @Failure 400 {object} ErrorResponse
// @Router /index/repositories/{owner}/{repo}/details [post]
func (h *Handler) RequestDetails(c *gin.Context) {
	ref := repoRef(c)
	started, err := h.dashboard.RequestDetails(ref)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, DetailsRequestResponse{Repository: ref, Started: started})
}

// GetDetails godoc
// @Summary Get live index status
// @Description Get the loading, error or resolved live status of one repository, reconciled with the cached batch status
// @Tags index
// @Produce json
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Success 200 {object} reconcile.EntityStatus
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /index/repositories/{owner}/{repo}/details [get]
func (h *Handler) GetDetails(c *gin.Context) {
	entity, err := h.dashboard.Details(repoRef(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// ClearDetails godoc
// @Summary Clear live index status
// @Description Discard the fetched live status of one repository
// @Tags index
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Router /index/repositories/{owner}/{repo}/details [delete]
func (h *Handler) ClearDetails(c *gin.Context) {
	if err := h.dashboard.ClearDetails(repoRef(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.startedAt).Round(time.Second).String(),
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status := statusFor(err)

	entry := h.logger.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
		"status": status,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}

	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func repoRef(c *gin.Context) string {
	return c.Param("owner") + "/" + c.Param("repo")
}

func getIntQueryParam(c *gin.Context, param string, defaultValue int) (int, error) {
	value := c.Query(param)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, apperrors.NewValidationError("invalid "+param+" parameter", err)
	}
	return parsed, nil
}
