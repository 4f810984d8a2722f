package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DailyEntry is one connector's count for one calendar day
type DailyEntry struct {
	Date    string  `json:"date"`
	HasDate bool    `json:"-"`
	Count   float64 `json:"count"`
}

// UnmarshalJSON never fails: malformed rows degrade to an undated zero entry
func (e *DailyEntry) UnmarshalJSON(data []byte) error {
	*e = DailyEntry{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	if raw, ok := fields["date"]; ok && !isNull(raw) {
		var date string
		if err := json.Unmarshal(raw, &date); err == nil {
			e.Date = date
			e.HasDate = true
		}
	}
	e.Count = coerceCount(fields["count"])
	return nil
}

// MarshalJSON writes the entry in the upstream shape
func (e DailyEntry) MarshalJSON() ([]byte, error) {
	if !e.HasDate {
		return json.Marshal(struct {
			Date  any     `json:"date"`
			Count float64 `json:"count"`
		}{nil, e.Count})
	}
	type plain DailyEntry
	return json.Marshal(plain(e))
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// coerceCount accepts numbers and numeric strings, anything else is 0
func coerceCount(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return 0
		}
		value = parsed
	}
	return SanitizeCount(value)
}

// SanitizeCount maps NaN, infinities and negatives to 0
func SanitizeCount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// DailySeries is one connector's ordered daily counts
type DailySeries struct {
	Present bool
	Entries []DailyEntry
}

// UnmarshalJSON accepts any JSON value; only arrays populate the series
func (s *DailySeries) UnmarshalJSON(data []byte) error {
	*s = DailySeries{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil
	}

	s.Present = true
	s.Entries = make([]DailyEntry, len(rows))
	for i, row := range rows {
		_ = s.Entries[i].UnmarshalJSON(row)
	}
	return nil
}

// MarshalJSON writes null for an absent series
func (s DailySeries) MarshalJSON() ([]byte, error) {
	if !s.Present {
		return []byte("null"), nil
	}
	if s.Entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Entries)
}

// Len returns the number of entries
func (s DailySeries) Len() int {
	return len(s.Entries)
}

// CountAt returns the count at index i, or 0 when the series is shorter
func (s DailySeries) CountAt(i int) float64 {
	if i < 0 || i >= len(s.Entries) {
		return 0
	}
	return SanitizeCount(s.Entries[i].Count)
}

// NewDailySeries builds a present series from dated counts
func NewDailySeries(counts ...DailyCount) DailySeries {
	entries := make([]DailyEntry, len(counts))
	for i, c := range counts {
		entries[i] = DailyEntry{Date: c.Date, HasDate: true, Count: SanitizeCount(float64(c.Count))}
	}
	return DailySeries{Present: true, Entries: entries}
}

// DailyCount is the well-formed upstream row
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailyCoverage holds the per-connector daily series
type DailyCoverage struct {
	GitHub        DailySeries `json:"github"`
	Linear        DailySeries `json:"linear"`
	Cursor        DailySeries `json:"cursor"`
	Greptile      DailySeries `json:"greptile"`
	Sentry        DailySeries `json:"sentry"`
	GitHubActions DailySeries `json:"github_actions"`
}

// CoverageDataPoint is one row of the merged chart series
type CoverageDataPoint struct {
	Date           string  `json:"date"`
	Label          string  `json:"label"`
	PullRequests   float64 `json:"pullRequests"`
	Issues         float64 `json:"issues"`
	CursorRequests float64 `json:"cursorRequests"`
	GreptileRepos  float64 `json:"greptileRepos"`
	SentryProjects float64 `json:"sentryProjects"`
	WorkflowRuns   float64 `json:"workflowRuns"`
}
