package engine

import "mcpi/internal/domain"

// ObserverFuncs adapts optional callbacks to domain.Observer. Nil fields are
// skipped.
type ObserverFuncs struct {
	Sample            func(domain.Point, domain.SampleCategory)
	StatisticsUpdated func(domain.RunningStatistics)
	Snapshot          func(domain.SimulationState)
	Finished          func()
}

func (f ObserverFuncs) OnSample(p domain.Point, c domain.SampleCategory) {
	if f.Sample != nil {
		f.Sample(p, c)
	}
}

func (f ObserverFuncs) OnStatisticsUpdated(s domain.RunningStatistics) {
	if f.StatisticsUpdated != nil {
		f.StatisticsUpdated(s)
	}
}

func (f ObserverFuncs) OnSnapshot(s domain.SimulationState) {
	if f.Snapshot != nil {
		f.Snapshot(s)
	}
}

func (f ObserverFuncs) OnFinished() {
	if f.Finished != nil {
		f.Finished()
	}
}

type multi []domain.Observer

// Observers fans notifications out to each non-nil observer in order.
func Observers(obs ...domain.Observer) domain.Observer {
	out := make(multi, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (m multi) OnSample(p domain.Point, c domain.SampleCategory) {
	for _, o := range m {
		o.OnSample(p, c)
	}
}

func (m multi) OnStatisticsUpdated(s domain.RunningStatistics) {
	for _, o := range m {
		o.OnStatisticsUpdated(s)
	}
}

func (m multi) OnSnapshot(s domain.SimulationState) {
	for _, o := range m {
		o.OnSnapshot(s)
	}
}

func (m multi) OnFinished() {
	for _, o := range m {
		o.OnFinished()
	}
}

var (
	_ domain.Observer = ObserverFuncs{}
	_ domain.Observer = multi(nil)
)
