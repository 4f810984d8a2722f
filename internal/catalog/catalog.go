// Package catalog holds the static knowledge about connectors: display
// names, accent colors and which progress formula applies to each
package catalog

import (
	"strings"
	"unicode"
)

// Formula selects how a connector's progress percentage is computed
type Formula int

const (
	// FormulaConnected is 100 when the connector is connected, else 0
	FormulaConnected Formula = iota
	// FormulaRepoRatio is completed over total units summed across repositories
	FormulaRepoRatio
	// FormulaAnyRuns is 100 once any workflow run was ingested
	FormulaAnyRuns
	// FormulaTeamsWithIssues is the share of teams with at least one issue
	FormulaTeamsWithIssues
	// FormulaIndexedRatio is indexed over total repositories once details are loaded
	FormulaIndexedRatio
	// FormulaLastSync is 100 once a last-sync timestamp exists
	FormulaLastSync
)

var formulaNames = map[Formula]string{
	FormulaConnected:       "connected",
	FormulaRepoRatio:       "repo_ratio",
	FormulaAnyRuns:         "any_runs",
	FormulaTeamsWithIssues: "teams_with_issues",
	FormulaIndexedRatio:    "indexed_ratio",
	FormulaLastSync:        "last_sync",
}

func (f Formula) String() string {
	if name, ok := formulaNames[f]; ok {
		return name
	}
	return "unknown"
}

// MarshalText lets formulas appear by name in JSON
func (f Formula) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Connector names
const (
	GitHub        = "github"
	GitHubActions = "github_actions"
	Linear        = "linear"
	Cursor        = "cursor"
	Greptile      = "greptile"
	Sentry        = "sentry"
)

// FallbackColor is used for connectors the catalog does not know
const FallbackColor = "#6b7280"

// Entry describes one connector
type Entry struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	AccentColor string  `json:"accent_color"`
	Formula     Formula `json:"progress_formula"`
	Known       bool    `json:"known"`
}

var entries = []Entry{
	{Name: GitHub, DisplayName: "GitHub", AccentColor: "#24292f", Formula: FormulaRepoRatio, Known: true},
	{Name: GitHubActions, DisplayName: "GitHub Actions", AccentColor: "#2088ff", Formula: FormulaAnyRuns, Known: true},
	{Name: Linear, DisplayName: "Linear", AccentColor: "#5e6ad2", Formula: FormulaTeamsWithIssues, Known: true},
	{Name: Cursor, DisplayName: "Cursor", AccentColor: "#0ea5e9", Formula: FormulaConnected, Known: true},
	{Name: Greptile, DisplayName: "Greptile", AccentColor: "#16a34a", Formula: FormulaIndexedRatio, Known: true},
	{Name: Sentry, DisplayName: "Sentry", AccentColor: "#362d59", Formula: FormulaLastSync, Known: true},
}

var byName = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return m
}()

// Lookup returns the catalog entry for name, with a neutral fallback for unknown names
func Lookup(name string) Entry {
	if e, ok := byName[name]; ok {
		return e
	}
	return Entry{
		Name:        name,
		DisplayName: titleCase(name),
		AccentColor: FallbackColor,
		Formula:     FormulaConnected,
	}
}

// Known returns the known connectors in display order
func Known() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Names returns the known connector names in display order
func Names() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func titleCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
