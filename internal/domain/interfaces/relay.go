package interfaces

import (
	"context"

	domaintypes "mcpi/internal/domain/types"
)

// RelayClient is how we talk to the snapshot relay server, all with context.
type RelayClient interface {
	PublishSnapshot(ctx context.Context, state domaintypes.SimulationState) error
	FetchSnapshot(ctx context.Context, runID string) (domaintypes.SimulationState, error)
	ListSnapshots(ctx context.Context) ([]domaintypes.SimulationState, error)
}
