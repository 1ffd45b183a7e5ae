package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"mcpi/internal/domain"
	"mcpi/internal/estimator"
	"mcpi/internal/geometry"
	"mcpi/internal/rng"
)

// Engine runs one simulation at a time. It is safe for use from multiple
// goroutines; calls are processed one at a time in arrival order.
type Engine struct {
	mu    sync.Mutex
	state domain.SimulationState

	src        domain.RandomSource
	classifier geometry.Classifier
	observer   domain.Observer
	log        logr.Logger
	diagnostic func(error)
	now        func() time.Time
	newID      func() string
}

// New constructs an idle Engine.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		log:   logr.Discard(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.src == nil {
		src, err := rng.NewRandomStream()
		if err != nil {
			return nil, fmt.Errorf("seed random source: %w", err)
		}
		e.src = src
	}
	// Reject a misconfigured solver up front so ticks cannot fail half way.
	if _, err := e.classifier.Solver.Sqrt(1); err != nil {
		return nil, err
	}
	if e.observer == nil {
		e.observer = ObserverFuncs{}
	}
	return e, nil
}

// Start begins a run over a domain of side domainSize lasting totalTicks ticks,
// with fresh statistics. Starting while a run is active is ignored.
func (e *Engine) Start(domainSize, totalTicks int) error {
	d, err := geometry.NewDomain(domainSize)
	if err != nil {
		return err
	}
	if totalTicks <= 0 {
		return fmt.Errorf("duration %d must be positive: %w", totalTicks, domain.ErrInvalidArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase == domain.PhaseRunning {
		e.reject("start")
		return nil
	}
	e.state = domain.SimulationState{
		RunID:          e.newID(),
		Phase:          domain.PhaseRunning,
		Domain:         d,
		TotalTicks:     totalTicks,
		RemainingTicks: totalTicks,
		StartedAt:      e.now(),
	}
	e.log.Info("run started", "runID", e.state.RunID, "domainSize", domainSize, "ticks", totalTicks)
	return nil
}

// Tick performs one sample-classify-record pass. It reports whether the tick
// was processed; ticks outside a run are ignored.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != domain.PhaseRunning {
		e.reject("tick")
		return false
	}

	p, err := geometry.SamplePoint(e.state.Domain.Size, e.src)
	if err != nil {
		e.log.Error(err, "sample failed", "runID", e.state.RunID)
		return false
	}
	category, err := e.classifier.Classify(p, e.state.Domain)
	if err != nil {
		e.log.Error(err, "classify failed", "runID", e.state.RunID, "point", p.String())
		return false
	}

	e.state.Statistics = estimator.Record(e.state.Statistics, category)
	e.state.RemainingTicks--
	finished := e.state.RemainingTicks == 0
	if finished {
		e.state.Phase = domain.PhaseFinished
	}

	snap := e.state
	e.observer.OnSample(p, category)
	e.observer.OnStatisticsUpdated(snap.Statistics)
	e.observer.OnSnapshot(snap)

	e.log.V(1).Info("tick",
		"runID", snap.RunID,
		"point", p.String(),
		"category", category.String(),
		"remaining", snap.RemainingTicks,
		"estimate", snap.Statistics.PiEstimate(),
	)
	if finished {
		e.log.Info("run finished",
			"runID", snap.RunID,
			"inside", snap.Statistics.Inside,
			"outside", snap.Statistics.Outside,
			"estimate", snap.Statistics.PiEstimate(),
		)
		e.observer.OnFinished()
	}
	return true
}

// Stop abandons the active run and discards its statistics. It reports
// whether a run was stopped.
func (e *Engine) Stop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != domain.PhaseRunning {
		e.reject("stop")
		return false
	}
	e.log.Info("run stopped", "runID", e.state.RunID, "remaining", e.state.RemainingTicks)
	e.state = domain.SimulationState{}
	return true
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() domain.SimulationState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() domain.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Phase
}

// reject reports an ignored trigger. Callers hold e.mu.
func (e *Engine) reject(op string) {
	err := fmt.Errorf("%s while %s: %w", op, e.state.Phase, domain.ErrInvalidStateTransition)
	e.log.Info("trigger ignored", "op", op, "phase", e.state.Phase.String(), "runID", e.state.RunID, "reason", err.Error())
	if e.diagnostic != nil {
		e.diagnostic(err)
	}
}
