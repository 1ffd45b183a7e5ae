// Package metrics exports simulation progress as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mcpi/internal/domain"
)

const namespace = "mcpi"

// Recorder is an engine observer that maintains Prometheus collectors.
type Recorder struct {
	samples   *prometheus.CounterVec
	ticks     prometheus.Counter
	finished  prometheus.Counter
	estimate  prometheus.Gauge
	remaining prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Classified samples broken out by category.",
		}, []string{"category"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Processed simulation ticks.",
		}),
		finished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_finished_total",
			Help:      "Runs that reached zero remaining ticks.",
		}),
		estimate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pi_estimate",
			Help:      "Latest estimate of pi from the running statistics.",
		}),
		remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remaining_ticks",
			Help:      "Ticks left in the latest observed run.",
		}),
	}
	for _, c := range []prometheus.Collector{r.samples, r.ticks, r.finished, r.estimate, r.remaining} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) OnSample(_ domain.Point, c domain.SampleCategory) {
	r.samples.WithLabelValues(c.String()).Inc()
	r.ticks.Inc()
}

func (r *Recorder) OnStatisticsUpdated(s domain.RunningStatistics) {
	r.estimate.Set(s.PiEstimate())
}

func (r *Recorder) OnSnapshot(s domain.SimulationState) {
	r.remaining.Set(float64(s.RemainingTicks))
}

func (r *Recorder) OnFinished() { r.finished.Inc() }

// ObserveSnapshot updates the gauges from a snapshot received out of band,
// e.g. by the relay server.
func (r *Recorder) ObserveSnapshot(s domain.SimulationState) {
	r.estimate.Set(s.Statistics.PiEstimate())
	r.remaining.Set(float64(s.RemainingTicks))
}

var _ domain.Observer = (*Recorder)(nil)
