package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"mcpi/internal/domain"
)

// history list|show|pooled: inspect recorded runs.
func historyCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded runs",
	}

	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := c.wire.History.List()
			if err != nil {
				return err
			}
			if asJSON {
				if runs == nil {
					runs = []domain.RunRecord{}
				}
				return writeJSON(cmd.OutOrStdout(), runs)
			}
			if len(runs) == 0 {
				cmd.Println("no runs recorded")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTARTED\tSTATUS\tSIZE\tSAMPLES\tPI")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%.6f\n",
					r.ID, r.StartedAt.Local().Format(time.DateTime), r.Status,
					r.Domain.Size, r.Statistics.Total(), r.Statistics.PiEstimate())
			}
			return tw.Flush()
		},
	}

	list.Flags().BoolVar(&asJSON, "json", false, "print runs as JSON")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := c.wire.History.Get(args[0])
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), rec)
			fmt.Fprintf(cmd.OutOrStdout(), "Started:     %s\nEnded:       %s\n",
				rec.StartedAt.Local().Format(time.RFC3339), rec.EndedAt.Local().Format(time.RFC3339))
			return nil
		},
	}

	pooled := &cobra.Command{
		Use:   "pooled",
		Short: "Pool the counts of all finished runs into one estimate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, n, err := c.wire.History.Pooled()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Runs: %d  Samples: %d  Inside: %d  Outside: %d\nπ ≈ %.6f  (error %.6f)\n",
				n, st.Total(), st.Inside, st.Outside, st.PiEstimate(), st.AbsoluteError())
			return nil
		},
	}

	cmd.AddCommand(list, show, pooled)
	return cmd
}
