package types

import "time"

// RunStatus records how a run ended.
type RunStatus string

const (
	RunFinished RunStatus = "finished"
	RunStopped  RunStatus = "stopped"
)

// RunRecord is the persisted summary of a run. Only running counts are kept;
// individual samples are not.
type RunRecord struct {
	ID          string            `json:"id"`
	Fingerprint string            `json:"fingerprint"`
	Seed        string            `json:"seed,omitempty"`
	Domain      Domain            `json:"domain"`
	TotalTicks  int               `json:"total_ticks"`
	Statistics  RunningStatistics `json:"statistics"`
	Status      RunStatus         `json:"status"`
	StartedAt   time.Time         `json:"started_at"`
	EndedAt     time.Time         `json:"ended_at"`
}
