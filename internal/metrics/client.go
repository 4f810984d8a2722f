package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/Kamar-Folarin/coverage-monitor/internal/config"
	apperrors "github.com/Kamar-Folarin/coverage-monitor/internal/errors"
	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
	"github.com/Kamar-Folarin/coverage-monitor/pkg/utils"
)

const maxErrorBody = 512

// Client talks to the upstream metrics API
type Client struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Logger
}

// ClientOption allows configuring the metrics client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.client = httpClient
	}
}

// NewClient creates a new metrics API client
func NewClient(cfg *config.MetricsAPIConfig, logger *logrus.Logger, opts ...ClientOption) *Client {
	httpClient := &http.Client{}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = cfg.Timeout

	client := &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// GetSyncStatus fetches the backend sync status
func (c *Client) GetSyncStatus(ctx context.Context) (*models.SyncStatus, error) {
	var status models.SyncStatus
	if err := c.get(ctx, "/sync/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetCoverage fetches the coverage totals and connector list
func (c *Client) GetCoverage(ctx context.Context) (*models.CoverageTotals, error) {
	var totals models.CoverageTotals
	if err := c.get(ctx, "/coverage", nil, &totals); err != nil {
		return nil, err
	}
	return &totals, nil
}

// GetDailyCoverage fetches per-connector daily counts for the last days days
func (c *Client) GetDailyCoverage(ctx context.Context, days int) (*models.DailyCoverage, error) {
	if days <= 0 {
		return nil, NewValidationError("days", strconv.Itoa(days))
	}

	query := url.Values{}
	query.Set("days", strconv.Itoa(days))

	var daily models.DailyCoverage
	if err := c.get(ctx, "/coverage/daily", query, &daily); err != nil {
		return nil, err
	}
	return &daily, nil
}

// GetCoverageBundle fetches totals and daily counts concurrently
func (c *Client) GetCoverageBundle(ctx context.Context, days int) (*models.CoverageBundle, error) {
	var (
		totals *models.CoverageTotals
		daily  *models.DailyCoverage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = c.GetCoverage(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = c.GetDailyCoverage(gctx, days)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.CoverageBundle{Totals: *totals, Daily: *daily}, nil
}

// ListIndexedRepositories fetches the batch index status of every repository
func (c *Client) ListIndexedRepositories(ctx context.Context) ([]models.IndexedRepository, error) {
	var repos []models.IndexedRepository
	if err := c.get(ctx, "/greptile/repositories", nil, &repos); err != nil {
		return nil, err
	}
	if repos == nil {
		repos = []models.IndexedRepository{}
	}
	return repos, nil
}

// GetIndexStatus fetches the live index status of one repository
func (c *Client) GetIndexStatus(ctx context.Context, repository string) (*models.LiveIndexStatus, error) {
	owner, name, err := utils.SplitRepoKey(repository)
	if err != nil {
		return nil, NewValidationError("repository", repository)
	}

	path := fmt.Sprintf("/greptile/repositories/%s/%s/status", url.PathEscape(owner), url.PathEscape(name))

	var live models.LiveIndexStatus
	if err := c.get(ctx, path, nil, &live); err != nil {
		if IsNotFound(err) {
			return &models.LiveIndexStatus{Status: "not_found"}, nil
		}
		return nil, err
	}
	return &live, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, path, result)
}

// do performs a single request; polling callers retry on their own schedule
func (c *Client) do(req *http.Request, path string, result interface{}) error {
	logger := c.logger.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   path,
	})

	resp, err := c.client.Do(req)
	if err != nil {
		logger.WithError(err).Debug("Metrics API request failed")
		return NewAPIError(0, path, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewAPIError(resp.StatusCode, path, "failed to read response body", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.NewUnauthorizedError("metrics API rejected credentials",
			NewAPIError(resp.StatusCode, path, truncate(body), nil))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return NewAPIError(resp.StatusCode, path, truncate(body), nil)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return NewAPIError(resp.StatusCode, path, "failed to decode response", err)
		}
	}

	logger.WithField("status", resp.StatusCode).Debug("Metrics API request succeeded")
	return nil
}

func truncate(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		return text[:maxErrorBody] + "..."
	}
	if text == "" {
		return "empty response body"
	}
	return text
}
