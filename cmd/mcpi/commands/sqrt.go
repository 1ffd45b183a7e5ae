package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mcpi/internal/numeric"
)

// sqrt <n>: approximate a square root with the configured solver.
func sqrtCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "sqrt <n>",
		Short:       "Approximate the square root of n",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipWire: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse %q: %w", args[0], err)
			}
			s := numeric.Solver{Tolerance: c.cfg.Simulation.Tolerance, MaxIterations: c.cfg.Simulation.MaxIterations}
			res, err := s.Solve(n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.10g\n", res.Value)
			c.log.V(1).Info("solved", "n", n, "iterations", res.Iterations, "capped", res.Capped)
			if res.Capped {
				cmd.PrintErrf("warning: iteration cap %d reached before tolerance %g\n", s.MaxIterations, s.Tolerance)
			}
			return nil
		},
	}
	cmd.Flags().Float64("tolerance", 1e-6, "convergence tolerance")
	cmd.Flags().Int("max-iterations", 1000, "iteration cap")
	c.bind(cmd, map[string]string{
		"tolerance":      "simulation.tolerance",
		"max-iterations": "simulation.max_iterations",
	})
	return cmd
}
