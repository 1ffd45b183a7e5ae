package interfaces

import domaintypes "mcpi/internal/domain/types"

// Observer receives the engine's outbound notifications. Calls arrive on the
// goroutine that issued the tick, in order: OnSample, OnStatisticsUpdated,
// OnSnapshot and, on the final tick only, OnFinished.
//
// Observers must not call back into the engine that notifies them.
type Observer interface {
	OnSample(point domaintypes.Point, category domaintypes.SampleCategory)
	OnStatisticsUpdated(stats domaintypes.RunningStatistics)
	OnSnapshot(state domaintypes.SimulationState)
	OnFinished()
}
