// Package config loads mcpi settings from defaults, an optional TOML file,
// MCPI_* environment variables and bound command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"mcpi/internal/domain"
	"mcpi/internal/geometry"
)

// EnvPrefix prefixes environment overrides, e.g. MCPI_SIMULATION_DOMAIN_SIZE.
const EnvPrefix = "MCPI"

// Config holds application configuration.
type Config struct {
	Home       string           `mapstructure:"home"`
	Store      StoreConfig      `mapstructure:"store"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Relay      RelayConfig      `mapstructure:"relay"`
	Log        LogConfig        `mapstructure:"log"`
}

// StoreConfig selects where run records go.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // file | sqlite
	Path   string `mapstructure:"path"`   // sqlite database path; defaults under Home
}

// SimulationConfig holds run defaults.
type SimulationConfig struct {
	DomainSize    int           `mapstructure:"domain_size"`
	Duration      int           `mapstructure:"duration"`
	Interval      time.Duration `mapstructure:"interval"`
	Tolerance     float64       `mapstructure:"tolerance"`
	MaxIterations int           `mapstructure:"max_iterations"`
	Boundary      string        `mapstructure:"boundary"`
	Seed          string        `mapstructure:"seed"`
}

// RelayConfig holds snapshot relay settings.
type RelayConfig struct {
	URL     string        `mapstructure:"url"`
	Listen  string        `mapstructure:"listen"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// DefaultHome returns $HOME/.mcpi, or .mcpi when no home directory is known.
func DefaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".mcpi"
	}
	return filepath.Join(dir, ".mcpi")
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("home", DefaultHome())
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.path", "")
	v.SetDefault("simulation.domain_size", 200)
	v.SetDefault("simulation.duration", 1800)
	v.SetDefault("simulation.interval", time.Second)
	v.SetDefault("simulation.tolerance", 1e-6)
	v.SetDefault("simulation.max_iterations", 1000)
	v.SetDefault("simulation.boundary", "inside")
	v.SetDefault("simulation.seed", "")
	v.SetDefault("relay.url", "")
	v.SetDefault("relay.listen", ":8080")
	v.SetDefault("relay.timeout", 2*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges the config file into v. The path is, in order: explicit
// path, $MCPI_CONFIG, <home>/config.toml. A missing file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path == "" {
		path = filepath.Join(v.GetString("home"), "config.toml")
	}
	v.SetConfigFile(path)
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("read config %s: %w", path, err)
}

// Load decodes and validates v.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(c.Home, "runs.db")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	s := c.Simulation
	if s.DomainSize <= 0 {
		errs = append(errs, fmt.Errorf("simulation.domain_size %d must be positive", s.DomainSize))
	}
	if s.Duration <= 0 {
		errs = append(errs, fmt.Errorf("simulation.duration %d must be positive", s.Duration))
	}
	if s.Interval < 0 {
		errs = append(errs, fmt.Errorf("simulation.interval %s must not be negative", s.Interval))
	}
	if !(s.Tolerance > 0) {
		errs = append(errs, fmt.Errorf("simulation.tolerance %v must be positive", s.Tolerance))
	}
	if s.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("simulation.max_iterations %d must be positive", s.MaxIterations))
	}
	if _, err := geometry.ParseBoundary(s.Boundary); err != nil {
		errs = append(errs, fmt.Errorf("simulation.boundary %q must be inside or outside", s.Boundary))
	}
	switch c.Store.Driver {
	case "file", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("store.driver %q must be file or sqlite", c.Store.Driver))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, errors.Join(errs...))
	}
	return nil
}
