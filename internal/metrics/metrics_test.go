package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpi/internal/domain"
	"mcpi/internal/engine"
	"mcpi/internal/metrics"
	"mcpi/internal/rng"
)

func TestRecorder_DrivenByEngine(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	// centre, corner, centre
	eng, err := engine.New(
		engine.WithRandomSource(rng.NewSequence(100, 100, 0, 0, 100, 100)),
		engine.WithObserver(rec),
	)
	require.NoError(t, err)
	require.NoError(t, eng.Start(200, 3))
	for range 3 {
		require.True(t, eng.Tick())
	}

	expected := `
# HELP mcpi_samples_total Classified samples broken out by category.
# TYPE mcpi_samples_total counter
mcpi_samples_total{category="inside"} 2
mcpi_samples_total{category="outside"} 1
# HELP mcpi_ticks_total Processed simulation ticks.
# TYPE mcpi_ticks_total counter
mcpi_ticks_total 3
# HELP mcpi_runs_finished_total Runs that reached zero remaining ticks.
# TYPE mcpi_runs_finished_total counter
mcpi_runs_finished_total 1
# HELP mcpi_remaining_ticks Ticks left in the latest observed run.
# TYPE mcpi_remaining_ticks gauge
mcpi_remaining_ticks 0
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"mcpi_samples_total", "mcpi_ticks_total", "mcpi_runs_finished_total", "mcpi_remaining_ticks")
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var estimate float64
	for _, mf := range mfs {
		if mf.GetName() == "mcpi_pi_estimate" {
			estimate = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.InDelta(t, 4*2.0/3, estimate, 1e-12)
}

func TestRecorder_ObserveSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	rec.ObserveSnapshot(domain.SimulationState{
		RemainingTicks: 42,
		Statistics:     domain.RunningStatistics{Inside: 785, Outside: 215},
	})
	n, err := testutil.GatherAndCount(reg, "mcpi_pi_estimate")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP mcpi_remaining_ticks Ticks left in the latest observed run.
# TYPE mcpi_remaining_ticks gauge
mcpi_remaining_ticks 42
`), "mcpi_remaining_ticks")
	require.NoError(t, err)
}

func TestNewRecorder_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewRecorder(reg)
	require.NoError(t, err)
	_, err = metrics.NewRecorder(reg)
	assert.Error(t, err)
}
