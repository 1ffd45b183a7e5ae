package commands

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mcpi/internal/app"
	"mcpi/internal/config"
	"mcpi/internal/logging"
)

// cli carries state shared by subcommands.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     logr.Logger
	flush   func()
	wire    *app.Wire

	// bindings maps a command's flag names to viper keys. They are bound
	// only for the command being executed since several commands share keys.
	bindings map[*cobra.Command]map[string]string
}

// skipWire marks commands that only need settings and a logger.
const skipWire = "mcpi/skip-wire"

// Execute runs the CLI with os.Args.
func Execute() error {
	c, root := newCLI()
	err := root.Execute()
	if cerr := c.close(); err == nil {
		err = cerr
	}
	return err
}

// newCLI builds the command tree with fresh configuration state.
func newCLI() (*cli, *cobra.Command) {
	c := &cli{
		v:        config.NewViper(),
		log:      logr.Discard(),
		flush:    func() {},
		bindings: make(map[*cobra.Command]map[string]string),
	}

	root := &cobra.Command{
		Use:          "mcpi",
		Short:        "Estimate π by Monte Carlo sampling",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, owner := range []*cobra.Command{cmd.Root(), cmd} {
				for flag, key := range c.bindings[owner] {
					if err := c.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
						return err
					}
				}
			}
			if err := config.ReadFile(c.v, c.cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load(c.v)
			if err != nil {
				return err
			}
			c.cfg = cfg
			if c.log, c.flush, err = logging.New(cfg.Log.Level, cfg.Log.Development); err != nil {
				return err
			}
			if cmd.Annotations[skipWire] != "" {
				return nil
			}
			c.wire, err = app.NewWire(app.Config{Settings: cfg, Log: c.log})
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default <home>/config.toml)")
	pf.String("home", "", "data dir (default ~/.mcpi)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("store", "file", "run store: file or sqlite")
	pf.String("relay", "", "relay base URL (e.g. http://127.0.0.1:8080)")
	c.bind(root, map[string]string{
		"home":      "home",
		"log-level": "log.level",
		"store":     "store.driver",
		"relay":     "relay.url",
	})

	root.AddCommand(runCmd(c), watchCmd(c), historyCmd(c), sqrtCmd(c), classifyCmd(c))
	return c, root
}

// close releases the wiring and flushes the logger. It runs after every
// command, including failed ones.
func (c *cli) close() error {
	var err error
	if c.wire != nil {
		err = c.wire.Close()
		c.wire = nil
	}
	c.flush()
	return err
}

// bind records flag names to viper keys so flags override file and env
// values when cmd runs.
func (c *cli) bind(cmd *cobra.Command, keys map[string]string) {
	c.bindings[cmd] = keys
}

// simulationFlags registers the shared run flags on cmd.
func (c *cli) simulationFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("size", 200, "domain side length")
	f.Int("duration", 1800, "number of ticks")
	f.Duration("interval", time.Second, "delay between ticks; 0 runs back-to-back")
	f.String("seed", "", "seed phrase for a reproducible run")
	f.Float64("tolerance", 1e-6, "square root convergence tolerance")
	f.Int("max-iterations", 1000, "square root iteration cap")
	f.String("boundary", "inside", "category for points exactly on the circle: inside or outside")
	c.bind(cmd, map[string]string{
		"size":           "simulation.domain_size",
		"duration":       "simulation.duration",
		"interval":       "simulation.interval",
		"seed":           "simulation.seed",
		"tolerance":      "simulation.tolerance",
		"max-iterations": "simulation.max_iterations",
		"boundary":       "simulation.boundary",
	})
}
