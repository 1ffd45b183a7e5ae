package types

import (
	"fmt"
	"time"
)

// Phase is the lifecycle state of a simulation engine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseFinished
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText mirrors MarshalText.
func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*p = PhaseIdle
	case "running":
		*p = PhaseRunning
	case "finished":
		*p = PhaseFinished
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}

// SimulationState is a snapshot of one run.
//
// Ticks elapsed is always TotalTicks - RemainingTicks, which equals
// Statistics.Total().
type SimulationState struct {
	RunID          string            `json:"run_id"`
	Phase          Phase             `json:"phase"`
	Domain         Domain            `json:"domain"`
	TotalTicks     int               `json:"total_ticks"`
	RemainingTicks int               `json:"remaining_ticks"`
	Statistics     RunningStatistics `json:"statistics"`
	StartedAt      time.Time         `json:"started_at"`
}

// Elapsed returns the number of ticks processed so far.
func (s SimulationState) Elapsed() int { return s.TotalTicks - s.RemainingTicks }
