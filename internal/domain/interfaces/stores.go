package interfaces

import domaintypes "mcpi/internal/domain/types"

// RunStore persists run summaries.
type RunStore interface {
	SaveRun(rec domaintypes.RunRecord) error
	LoadRun(id string) (domaintypes.RunRecord, bool, error)
	// ListRuns returns all records, most recently started first.
	ListRuns() ([]domaintypes.RunRecord, error)
}
