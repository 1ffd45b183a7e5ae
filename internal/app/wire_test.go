package app_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpi/internal/app"
	"mcpi/internal/config"
	"mcpi/internal/domain"
	"mcpi/internal/geometry"
	"mcpi/internal/relay"
)

func settings(t *testing.T, driver string) config.Config {
	t.Helper()
	v := config.NewViper()
	home := t.TempDir()
	v.Set("home", home)
	v.Set("store.driver", driver)
	c, err := config.Load(v)
	require.NoError(t, err)
	return c
}

func TestNewWire_RunAndQuery(t *testing.T) {
	for _, driver := range []string{"file", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			w, err := app.NewWire(app.Config{Settings: settings(t, driver)})
			require.NoError(t, err)
			defer w.Close()
			assert.Nil(t, w.Relay)

			rec, err := w.Runner.Run(context.Background(), domain.RunParams{DomainSize: 200, TotalTicks: 20, Seed: "wire"})
			require.NoError(t, err)

			got, err := w.History.Get(rec.ID)
			require.NoError(t, err)
			assert.Equal(t, rec.Statistics, got.Statistics)

			n, err := testutil.GatherAndCount(w.Registry, "mcpi_ticks_total")
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestNewWire_SQLitePathDefaultsUnderHome(t *testing.T) {
	s := settings(t, "sqlite")
	assert.Equal(t, filepath.Join(s.Home, "runs.db"), s.Store.Path)
}

func TestNewWire_PublishesToRelay(t *testing.T) {
	srv := httptest.NewServer(relay.NewServer(relay.ServerOptions{Log: logr.Discard()}))
	defer srv.Close()

	s := settings(t, "file")
	s.Relay.URL = srv.URL
	w, err := app.NewWire(app.Config{Settings: s})
	require.NoError(t, err)
	require.NotNil(t, w.Relay)

	rec, err := w.Runner.Run(context.Background(), domain.RunParams{DomainSize: 50, TotalTicks: 5})
	require.NoError(t, err)
	// Close delivers snapshots still queued for the relay.
	require.NoError(t, w.Close())

	snap, err := w.Relay.FetchSnapshot(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFinished, snap.Phase)
	assert.Equal(t, rec.Statistics, snap.Statistics)
}

func TestNewClassifier(t *testing.T) {
	c, err := app.NewClassifier(config.SimulationConfig{Tolerance: 1e-3, MaxIterations: 10, Boundary: "outside"})
	require.NoError(t, err)
	assert.Equal(t, geometry.BoundaryOutside, c.Boundary)
	assert.Equal(t, 1e-3, c.Solver.Tolerance)

	_, err = app.NewClassifier(config.SimulationConfig{Boundary: "edge"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
