package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mcpi/internal/app"
	"mcpi/internal/domain"
)

// classify <x> <y>: classify one point against the configured domain.
func classifyCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "classify <x> <y>",
		Short:       "Classify a point as inside or outside the inscribed circle",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{skipWire: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var p domain.Point
			var err error
			if p.X, err = strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("parse x %q: %w", args[0], err)
			}
			if p.Y, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("parse y %q: %w", args[1], err)
			}
			classifier, err := app.NewClassifier(c.cfg.Simulation)
			if err != nil {
				return err
			}
			d := domain.Domain{Size: c.cfg.Simulation.DomainSize}
			cat, err := classifier.Classify(p, d)
			if err != nil {
				return err
			}
			dist, err := classifier.Distance(p, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  distance %.6f  radius %.1f\n", cat, dist, d.Radius())
			return nil
		},
	}
	c.simulationFlags(cmd)
	return cmd
}
