package relay_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpi/internal/domain"
	"mcpi/internal/engine"
	"mcpi/internal/metrics"
	"mcpi/internal/relay"
	"mcpi/internal/rng"
)

func newServer(t *testing.T) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)
	srv := httptest.NewServer(relay.NewServer(relay.ServerOptions{
		Gatherer: reg,
		Observer: rec,
		Log:      logr.Discard(),
	}))
	t.Cleanup(srv.Close)
	return srv, reg
}

func TestRelay_PublishAndFetch(t *testing.T) {
	srv, _ := newServer(t)
	c := relay.NewHTTP(srv.URL+"/", srv.Client())
	ctx := context.Background()

	base := time.Date(2021, 1, 19, 0, 0, 0, 0, time.UTC)
	older := domain.SimulationState{RunID: "old", Phase: domain.PhaseFinished, StartedAt: base,
		Domain: domain.Domain{Size: 200}, TotalTicks: 4, Statistics: domain.RunningStatistics{Inside: 3, Outside: 1}}
	newer := domain.SimulationState{RunID: "new", Phase: domain.PhaseRunning, StartedAt: base.Add(time.Minute),
		Domain: domain.Domain{Size: 200}, TotalTicks: 10, RemainingTicks: 9, Statistics: domain.RunningStatistics{Inside: 1}}

	require.NoError(t, c.PublishSnapshot(ctx, older))
	require.NoError(t, c.PublishSnapshot(ctx, newer))

	got, err := c.FetchSnapshot(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, older.Statistics, got.Statistics)
	assert.Equal(t, domain.PhaseFinished, got.Phase)
	assert.True(t, older.StartedAt.Equal(got.StartedAt))

	list, err := c.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].RunID)

	_, err = c.FetchSnapshot(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestRelay_RejectsBadSnapshots(t *testing.T) {
	srv, _ := newServer(t)
	c := relay.NewHTTP(srv.URL, nil)

	err := c.PublishSnapshot(context.Background(), domain.SimulationState{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")

	resp, err := http.Post(srv.URL+"/snapshots", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPublisher_StreamsEngineSnapshots(t *testing.T) {
	srv, _ := newServer(t)
	c := relay.NewHTTP(srv.URL, srv.Client())
	pub := relay.NewPublisher(c, time.Second, logr.Discard())
	defer pub.Close()

	eng, err := engine.New(
		engine.WithRandomSource(rng.NewSequence(100, 100)),
		engine.WithObserver(pub),
		engine.WithIDGenerator(func() string { return "run-1" }),
	)
	require.NoError(t, err)
	require.NoError(t, eng.Start(200, 3))

	require.True(t, eng.Tick())
	require.Eventually(t, func() bool {
		got, err := c.FetchSnapshot(context.Background(), "run-1")
		return err == nil && got.RemainingTicks == 2
	}, 2*time.Second, 10*time.Millisecond)

	require.True(t, eng.Tick())
	require.True(t, eng.Tick())
	require.NoError(t, pub.Close())

	got, err := c.FetchSnapshot(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFinished, got.Phase)
	assert.EqualValues(t, 3, got.Statistics.Inside)
	assert.Equal(t, 4.0, got.Statistics.PiEstimate())

	// Snapshots after Close are dropped.
	pub.OnSnapshot(domain.SimulationState{RunID: "late"})
	_, err = c.FetchSnapshot(context.Background(), "late")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestPublisher_SlowRelayDoesNotBlockEngine(t *testing.T) {
	var (
		mu       sync.Mutex
		received []domain.SimulationState
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var s domain.SimulationState
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		mu.Lock()
		received = append(received, s)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	pub := relay.NewPublisher(relay.NewHTTP(srv.URL, srv.Client()), 2*time.Second, logr.Discard())
	defer pub.Close()
	eng, err := engine.New(
		engine.WithRandomSource(rng.NewSequence(100, 100)),
		engine.WithObserver(pub),
	)
	require.NoError(t, err)

	const ticks = 5
	require.NoError(t, eng.Start(200, ticks))
	for i := 0; i < ticks; i++ {
		start := time.Now()
		require.True(t, eng.Tick())
		assert.Less(t, time.Since(start), 100*time.Millisecond, "tick %d", i)
	}
	finished := eng.Snapshot().RunID

	// Stop from another goroutine while a publish is in flight.
	require.NoError(t, eng.Start(200, ticks))
	require.True(t, eng.Tick())
	stopped := make(chan time.Duration, 1)
	go func() {
		start := time.Now()
		eng.Stop()
		stopped <- time.Since(start)
	}()
	select {
	case d := <-stopped:
		assert.Less(t, d, 100*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on the relay")
	}

	require.NoError(t, pub.Close())
	mu.Lock()
	defer mu.Unlock()
	var last domain.SimulationState
	n := 0
	for _, s := range received {
		if s.RunID == finished {
			last = s
			n++
		}
	}
	assert.Less(t, n, ticks, "snapshots were not coalesced")
	assert.Equal(t, domain.PhaseFinished, last.Phase)
	assert.EqualValues(t, ticks, last.Statistics.Total())
}

func TestPublisher_FailuresDoNotStopRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	pub := relay.NewPublisher(relay.NewHTTP(srv.URL, nil), time.Second, logr.Discard())
	defer pub.Close()
	eng, err := engine.New(engine.WithObserver(pub))
	require.NoError(t, err)
	require.NoError(t, eng.Start(10, 2))
	assert.True(t, eng.Tick())
	assert.True(t, eng.Tick())
	assert.Equal(t, domain.PhaseFinished, eng.Phase())
	assert.NoError(t, pub.Close())
}

func TestRelay_MetricsEndpoint(t *testing.T) {
	srv, _ := newServer(t)
	c := relay.NewHTTP(srv.URL, nil)
	require.NoError(t, c.PublishSnapshot(context.Background(), domain.SimulationState{
		RunID: "m", RemainingTicks: 7, Statistics: domain.RunningStatistics{Inside: 785, Outside: 215},
	}))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "mcpi_remaining_ticks 7")
	assert.Contains(t, string(body), "mcpi_pi_estimate 3.14")
}
