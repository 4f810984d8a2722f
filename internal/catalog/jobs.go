package catalog

var jobLabels = map[string]string{
	"github_sync":          "Syncing GitHub repositories",
	"pull_requests":        "Syncing pull requests",
	"pr_details":           "Fetching pull request details",
	"commits":              "Syncing commits",
	"workflow_runs":        "Syncing GitHub Actions runs",
	"linear_sync":          "Syncing Linear issues",
	"cursor_sync":          "Syncing Cursor usage",
	"greptile_sync":        "Refreshing Greptile index status",
	"sentry_sync":          "Syncing Sentry projects",
	"developer_identities": "Matching developer identities",
}

// JobLabel returns a human label for a backend job key, or the key itself
func JobLabel(key string) string {
	if label, ok := jobLabels[key]; ok {
		return label
	}
	return key
}
