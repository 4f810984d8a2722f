package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
	"github.com/Kamar-Folarin/coverage-monitor/internal/reconcile"
	"github.com/Kamar-Folarin/coverage-monitor/pkg/utils"
)

func newIndexCmd(opts *options) *cobra.Command {
	var cachedOnly bool

	indexCmd := &cobra.Command{
		Use:   "index <owner/repo>",
		Short: "Print the cached and live index status of a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := utils.RepoKey(args[0])
			if err != nil {
				return err
			}

			client := opts.client(cmd)
			ctx := cmd.Context()

			batch, err := client.ListIndexedRepositories(ctx)
			if err != nil {
				return fmt.Errorf("error fetching index status: %w", err)
			}

			cached := models.IndexedRepository{Repository: key}
			for _, repo := range batch {
				if utils.NormalizeRepoKey(repo.Repository) == key {
					cached = repo
					break
				}
			}

			details := map[string]reconcile.DetailState{}
			if !cachedOnly {
				state := reconcile.DetailState{Repository: key, RequestedAt: time.Now()}
				live, err := client.GetIndexStatus(ctx, key)
				if err != nil {
					state.Error = err.Error()
				} else {
					state.Data = live
				}
				details[key] = state
			}

			entity := reconcile.Reconcile([]models.IndexedRepository{cached}, details)[0]
			printEntity(cmd, entity)
			return nil
		},
	}

	indexCmd.Flags().BoolVar(&cachedOnly, "cached", false, "Only print the cached batch status")
	return indexCmd
}

func printEntity(cmd *cobra.Command, e reconcile.EntityStatus) {
	out := cmd.OutOrStdout()

	cached := e.CachedStatus
	if cached == "" {
		cached = "unknown"
	}
	fmt.Fprintf(out, "Repository: %s\n", e.Repository)
	if e.Branch != "" {
		fmt.Fprintf(out, "Branch:     %s\n", e.Branch)
	}
	fmt.Fprintf(out, "Cached:     %s\n", cached)
	if e.CachedError != "" {
		fmt.Fprintf(out, "Error:      %s\n", e.CachedError)
	}
	if e.Detail != nil && e.Detail.Data != nil {
		fmt.Fprintf(out, "Live:       %s\n", e.Detail.Data.Status)
	}
	if e.EffectiveStatus != e.CachedStatus {
		fmt.Fprintf(out, "Effective:  %s\n", e.EffectiveStatus)
	}

	if e.Notice == nil || e.Notice.Message == "" {
		return
	}
	if e.Notice.Preformatted {
		fmt.Fprintf(out, "\n%s\n", e.Notice.Message)
		return
	}
	fmt.Fprintf(out, "Note:       %s\n", e.Notice.Message)
}
