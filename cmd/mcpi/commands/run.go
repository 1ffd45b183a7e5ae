package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"mcpi/internal/domain"
	"mcpi/internal/engine"
)

// run: drive one simulation to completion and record it.
func runCmd(c *cli) *cobra.Command {
	var progress, asJSON bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and record the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			s := c.cfg.Simulation
			out := cmd.OutOrStdout()
			params := domain.RunParams{
				DomainSize: s.DomainSize,
				TotalTicks: s.Duration,
				Interval:   s.Interval,
				Seed:       s.Seed,
			}
			if progress {
				params.Display = progressPrinter(out)
			}

			rec, err := c.wire.Runner.Run(ctx, params)
			if err != nil && !errors.Is(err, ctx.Err()) {
				return err
			}
			if asJSON {
				return writeJSON(out, rec)
			}
			printRecord(out, rec)
			return nil
		},
	}
	cmd.Flags().BoolVar(&progress, "progress", false, "print a line per tick")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the run record as JSON")
	c.simulationFlags(cmd)
	return cmd
}

func progressPrinter(w io.Writer) domain.Observer {
	return engine.ObserverFuncs{
		Snapshot: func(s domain.SimulationState) {
			st := s.Statistics
			fmt.Fprintf(w, "%6d/%d  inside %d  outside %d  π≈%.6f\n",
				s.TotalTicks-s.RemainingTicks, s.TotalTicks, st.Inside, st.Outside, st.PiEstimate())
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRecord(w io.Writer, rec domain.RunRecord) {
	st := rec.Statistics
	fmt.Fprintf(w, "Run:         %s (%s)\n", rec.ID, rec.Status)
	fmt.Fprintf(w, "Fingerprint: %s\n", rec.Fingerprint)
	if rec.Seed != "" {
		fmt.Fprintf(w, "Seed:        %s\n", rec.Seed)
	}
	fmt.Fprintf(w, "Domain:      %d  Ticks: %d/%d\n", rec.Domain.Size, st.Total(), rec.TotalTicks)
	fmt.Fprintf(w, "Inside:      %d  Outside: %d\n", st.Inside, st.Outside)
	fmt.Fprintf(w, "π ≈ %.6f  (error %.6f)\n", st.PiEstimate(), st.AbsoluteError())
}
