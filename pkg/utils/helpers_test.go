package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain key", input: "acme/widgets", want: "acme/widgets"},
		{name: "surrounding slashes", input: "/acme/widgets/", want: "acme/widgets"},
		{name: "https url", input: "https://github.com/acme/widgets", want: "acme/widgets"},
		{name: "git suffix", input: "https://github.com/acme/widgets.git", want: "acme/widgets"},
		{name: "missing repo", input: "acme", wantErr: true},
		{name: "too many parts", input: "acme/widgets/extra", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "url without repo", input: "https://github.com/acme", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RepoKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.input, NormalizeRepoKey(tt.input))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, NormalizeRepoKey(tt.input))
		})
	}
}

func TestSplitRepoKey(t *testing.T) {
	owner, repo, err := SplitRepoKey("acme/widgets")
	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widgets", repo)
}
