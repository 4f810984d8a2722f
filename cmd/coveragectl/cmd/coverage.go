package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/coverage-monitor/internal/dashboard"
)

func newCoverageCmd(opts *options) *cobra.Command {
	var days int

	coverageCmd := &cobra.Command{
		Use:   "coverage",
		Short: "Print the merged daily coverage series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			daily, err := opts.client(cmd).GetDailyCoverage(cmd.Context(), days)
			if err != nil {
				return fmt.Errorf("error fetching daily coverage: %w", err)
			}

			view := dashboard.BuildCoverage(*daily)
			if len(view.Points) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No coverage data.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "DATE\tPRS\tISSUES\tCURSOR\tGREPTILE\tSENTRY\tRUNS")
			for _, p := range view.Points {
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%g\n",
					p.Label, p.PullRequests, p.Issues, p.CursorRequests, p.GreptileRepos, p.SentryProjects, p.WorkflowRuns)
			}
			t := view.Totals
			fmt.Fprintf(w, "TOTAL\t%g\t%g\t%g\t%g\t%g\t%g\n",
				t.PullRequests, t.Issues, t.CursorRequests, t.GreptileRepos, t.SentryProjects, t.WorkflowRuns)
			return w.Flush()
		},
	}

	coverageCmd.Flags().IntVar(&days, "days", 90, "Number of days to fetch")
	return coverageCmd
}
