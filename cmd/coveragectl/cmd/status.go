package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/coverage-monitor/internal/dashboard"
)

func newStatusCmd(opts *options) *cobra.Command {
	var (
		limit  int
		sortBy string
	)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print the backend sync status and per-repository progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := opts.client(cmd).GetSyncStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("error fetching sync status: %w", err)
			}

			out := cmd.OutOrStdout()
			if banner := dashboard.BuildBanner(status); banner.Visible {
				fmt.Fprintln(out, banner.Text)
			} else {
				fmt.Fprintln(out, "No sync in progress.")
			}

			list, err := dashboard.BuildRepoList(status.Repositories, limit, sortBy)
			if err != nil {
				return err
			}
			if list.Total == 0 {
				return nil
			}

			fmt.Fprintln(out)
			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "REPOSITORY\tCOMPLETED\tTOTAL\tPCT")
			for _, r := range list.Items {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d%%\n", r.Name, r.CompletedUnits, r.TotalUnits, r.Pct)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if list.Notice != "" {
				fmt.Fprintln(out, list.Notice)
			}
			return nil
		},
	}

	statusCmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of repositories to print")
	statusCmd.Flags().StringVar(&sortBy, "sort", dashboard.SortByPct, "Ordering: pct or name")
	return statusCmd
}
