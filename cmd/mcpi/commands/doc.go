// Package commands defines the mcpi CLI and wires dependencies for subcommands.
//
// Commands
//
//   - run         Run a simulation to completion and record it
//   - watch       Run a simulation in a live terminal view
//   - history     List, show and pool recorded runs
//   - sqrt        Approximate a square root with the numeric solver
//   - classify    Classify one point against a domain's inscribed circle
//
// # Implementation
//
// The root command reads configuration (defaults, config file, MCPI_*
// environment, flags) and builds the dependency graph (run store, metrics,
// relay client, services) before any subcommand runs. Subcommands that do not
// touch the store skip the wiring.
package commands
