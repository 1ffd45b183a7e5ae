package domain

import (
	interfaces "mcpi/internal/domain/interfaces"
	types "mcpi/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Point             = types.Point
	Domain            = types.Domain
	SampleCategory    = types.SampleCategory
	RunningStatistics = types.RunningStatistics
	Phase             = types.Phase
	SimulationState   = types.SimulationState
	RunStatus         = types.RunStatus
	RunRecord         = types.RunRecord
)

// Constant re-exports.
const (
	Inside  = types.Inside
	Outside = types.Outside

	PhaseIdle     = types.PhaseIdle
	PhaseRunning  = types.PhaseRunning
	PhaseFinished = types.PhaseFinished

	RunFinished = types.RunFinished
	RunStopped  = types.RunStopped
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	RandomSource   = interfaces.RandomSource
	Observer       = interfaces.Observer
	RunStore       = interfaces.RunStore
	RelayClient    = interfaces.RelayClient
	RunParams      = interfaces.RunParams
	RunService     = interfaces.RunService
	HistoryService = interfaces.HistoryService
)
