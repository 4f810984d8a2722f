package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseGitHubURL extracts owner and repository name from a repository URL
func ParseGitHubURL(repoURL string) (owner, repo string, err error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return "", "", err
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GitHub repository URL: %s", repoURL)
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// SplitRepoKey accepts either "owner/repo" or a repository URL
func SplitRepoKey(key string) (owner, repo string, err error) {
	key = strings.TrimSpace(key)
	if strings.Contains(key, "://") {
		return ParseGitHubURL(key)
	}

	parts := strings.Split(strings.Trim(key, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository key %q, expected owner/repo", key)
	}
	return parts[0], parts[1], nil
}

// RepoKey normalizes a repository reference to "owner/repo"
func RepoKey(ref string) (string, error) {
	owner, repo, err := SplitRepoKey(ref)
	if err != nil {
		return "", err
	}
	return owner + "/" + repo, nil
}

// NormalizeRepoKey returns ref as "owner/repo", or ref unchanged when it cannot be parsed
func NormalizeRepoKey(ref string) string {
	key, err := RepoKey(ref)
	if err != nil {
		return ref
	}
	return key
}
