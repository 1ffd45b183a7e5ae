package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"mcpi/internal/domain"
	"mcpi/internal/engine"
	"mcpi/internal/geometry"
	"mcpi/internal/rng"
)

// Service runs simulations and saves their outcome.
//
// Observers passed to New (metrics, relay publisher) are attached to every
// engine the service builds; a per-run display observer comes in RunParams.
type Service struct {
	runs       domain.RunStore
	classifier geometry.Classifier
	observers  []domain.Observer
	log        logr.Logger
	now        func() time.Time
}

// New constructs a runner over runs.
func New(runs domain.RunStore, classifier geometry.Classifier, log logr.Logger, observers ...domain.Observer) *Service {
	return &Service{
		runs:       runs,
		classifier: classifier,
		observers:  observers,
		log:        log,
		now:        time.Now,
	}
}

// NewEngine builds an idle engine for p with the service's classifier and
// observers plus p.Display.
func (s *Service) NewEngine(p domain.RunParams) (*engine.Engine, error) {
	src, err := rng.ForSeed(p.Seed)
	if err != nil {
		return nil, fmt.Errorf("seed random source: %w", err)
	}
	obs := append(append([]domain.Observer(nil), s.observers...), p.Display)
	return engine.New(
		engine.WithRandomSource(src),
		engine.WithClassifier(s.classifier),
		engine.WithObserver(engine.Observers(obs...)),
		engine.WithLogger(s.log),
	)
}

// Run performs one run. It blocks until the run finishes or ctx is done.
// A cancelled run is saved as stopped and ctx.Err() is returned alongside
// its record.
func (s *Service) Run(ctx context.Context, p domain.RunParams) (domain.RunRecord, error) {
	if p.Interval < 0 {
		return domain.RunRecord{}, fmt.Errorf("interval %s must not be negative: %w", p.Interval, domain.ErrInvalidArgument)
	}
	eng, err := s.NewEngine(p)
	if err != nil {
		return domain.RunRecord{}, err
	}
	if err := eng.Start(p.DomainSize, p.TotalTicks); err != nil {
		return domain.RunRecord{}, err
	}
	state := eng.Snapshot()
	s.log.Info("run started", "runID", state.RunID, "domainSize", p.DomainSize, "ticks", p.TotalTicks, "interval", p.Interval)

	var tick <-chan time.Time
	if p.Interval > 0 {
		t := time.NewTicker(p.Interval)
		defer t.Stop()
		tick = t.C
	}

	for eng.Phase() == domain.PhaseRunning {
		if tick == nil {
			select {
			case <-ctx.Done():
				return s.stop(eng, p.Seed, ctx.Err())
			default:
			}
		} else {
			select {
			case <-ctx.Done():
				return s.stop(eng, p.Seed, ctx.Err())
			case <-tick:
			}
		}
		eng.Tick()
	}

	rec, err := s.Save(eng.Snapshot(), p.Seed, domain.RunFinished)
	if err != nil {
		return rec, err
	}
	s.log.Info("run finished", "runID", rec.ID, "inside", rec.Statistics.Inside, "outside", rec.Statistics.Outside, "pi", rec.Statistics.PiEstimate())
	return rec, nil
}

func (s *Service) stop(eng *engine.Engine, seed string, cause error) (domain.RunRecord, error) {
	state := eng.Snapshot()
	eng.Stop()
	rec, err := s.Save(state, seed, domain.RunStopped)
	if err != nil {
		return rec, err
	}
	s.log.Info("run stopped", "runID", rec.ID, "remaining", state.RemainingTicks, "pi", rec.Statistics.PiEstimate())
	return rec, cause
}

// Save persists the final state of a run with the given status.
func (s *Service) Save(state domain.SimulationState, seed string, status domain.RunStatus) (domain.RunRecord, error) {
	rec := domain.RunRecord{
		ID:          state.RunID,
		Fingerprint: rng.Fingerprint(state.Domain.Size, state.TotalTicks, seed),
		Seed:        seed,
		Domain:      state.Domain,
		TotalTicks:  state.TotalTicks,
		Statistics:  state.Statistics,
		Status:      status,
		StartedAt:   state.StartedAt,
		EndedAt:     s.now(),
	}
	if err := s.runs.SaveRun(rec); err != nil {
		return rec, fmt.Errorf("save run %s: %w", rec.ID, err)
	}
	return rec, nil
}

var _ domain.RunService = (*Service)(nil)
