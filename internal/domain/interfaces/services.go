package interfaces

import (
	"context"
	"time"

	domaintypes "mcpi/internal/domain/types"
)

// RunParams describes one run requested from the runner.
type RunParams struct {
	DomainSize int
	TotalTicks int
	// Interval between ticks; zero ticks back-to-back.
	Interval time.Duration
	// Seed makes the sample sequence reproducible; empty draws from the OS.
	Seed string
	// Display receives per-tick notifications in addition to the wired
	// metrics and relay observers. Optional.
	Display Observer
}

// RunService drives a simulation to completion or cancellation.
type RunService interface {
	Run(ctx context.Context, params RunParams) (domaintypes.RunRecord, error)
}

// HistoryService reads persisted runs.
type HistoryService interface {
	List() ([]domaintypes.RunRecord, error)
	Get(id string) (domaintypes.RunRecord, error)
	Pooled() (domaintypes.RunningStatistics, int, error)
}
