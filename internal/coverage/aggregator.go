// Package coverage merges per-connector daily count series into one
// chart series keyed on the code host's date axis
package coverage

import (
	"time"

	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
)

// MaxPoints bounds the merged series to roughly one quarter of days
const MaxPoints = 91

// LabelLayout is the short "Mon D" label format
const LabelLayout = "Jan 2"

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"}

// Aggregate merges the daily series onto the github date axis, reading other
// connectors by index and skipping rows without a string date
func Aggregate(dc models.DailyCoverage) []models.CoverageDataPoint {
	canonical := dc.GitHub
	if !canonical.Present || canonical.Len() == 0 {
		return []models.CoverageDataPoint{}
	}

	n := canonical.Len()
	if n > MaxPoints {
		n = MaxPoints
	}

	points := make([]models.CoverageDataPoint, 0, n)
	for i := 0; i < n; i++ {
		entry := canonical.Entries[i]
		if !entry.HasDate {
			continue
		}

		points = append(points, models.CoverageDataPoint{
			Date:           entry.Date,
			Label:          Label(entry.Date),
			PullRequests:   canonical.CountAt(i),
			Issues:         dc.Linear.CountAt(i),
			CursorRequests: dc.Cursor.CountAt(i),
			GreptileRepos:  dc.Greptile.CountAt(i),
			SentryProjects: dc.Sentry.CountAt(i),
			WorkflowRuns:   dc.GitHubActions.CountAt(i),
		})
	}

	return points
}

// Label formats an ISO date as "Mon D", returning unparsable dates as-is
func Label(date string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format(LabelLayout)
		}
	}
	return date
}

// Totals sums each numeric field across the series
func Totals(points []models.CoverageDataPoint) models.CoverageDataPoint {
	var total models.CoverageDataPoint
	for _, p := range points {
		total.PullRequests += p.PullRequests
		total.Issues += p.Issues
		total.CursorRequests += p.CursorRequests
		total.GreptileRepos += p.GreptileRepos
		total.SentryProjects += p.SentryProjects
		total.WorkflowRuns += p.WorkflowRuns
	}
	return total
}
