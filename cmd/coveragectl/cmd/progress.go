package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/coverage-monitor/internal/dashboard"
	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
)

func newProgressCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Print the progress percentage of every connector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.client(cmd)
			ctx := cmd.Context()

			status, err := client.GetSyncStatus(ctx)
			if err != nil {
				return fmt.Errorf("error fetching sync status: %w", err)
			}
			totals, err := client.GetCoverage(ctx)
			if err != nil {
				return fmt.Errorf("error fetching coverage: %w", err)
			}

			var index []models.IndexedRepository
			if status.GreptileConnected {
				if index, err = client.ListIndexedRepositories(ctx); err != nil {
					return fmt.Errorf("error fetching index status: %w", err)
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "CONNECTOR\tPROGRESS\tFORMULA\tLAST SYNC")
			for _, v := range dashboard.BuildConnectors(status, totals, index) {
				lastSync := "-"
				if v.LastSyncAt != nil {
					lastSync = v.LastSyncAt.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(w, "%s\t%d%%\t%s\t%s\n", v.DisplayName, v.Progress, v.Formula, lastSync)
			}
			return w.Flush()
		},
	}
}
