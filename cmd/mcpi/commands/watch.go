package commands

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mcpi/internal/domain"
	"mcpi/internal/engine"
	"mcpi/internal/tui"
)

// watch: run simulations in a live terminal view.
func watchCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run a simulation in a live terminal view (s stop, r restart, q quit)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.cfg.Simulation
			canvas := tui.NewCanvas()
			m := tui.New(tui.Options{
				NewEngine: func() (*engine.Engine, error) {
					return c.wire.Runner.NewEngine(domain.RunParams{Seed: s.Seed, Display: canvas})
				},
				Canvas:     canvas,
				DomainSize: s.DomainSize,
				TotalTicks: s.Duration,
				Interval:   s.Interval,
				Bell:       os.Stderr,
				Done: func(state domain.SimulationState, status domain.RunStatus) error {
					_, err := c.wire.Runner.Save(state, s.Seed, status)
					return err
				},
			})
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(tui.Model); ok {
				st := fm.State()
				if st.RunID != "" {
					cmd.Printf("last run %s: π ≈ %.6f over %d samples\n", st.RunID, st.Statistics.PiEstimate(), st.Statistics.Total())
				}
			}
			return nil
		},
	}
	c.simulationFlags(cmd)
	return cmd
}
