package app

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"mcpi/internal/config"
	"mcpi/internal/domain"
	"mcpi/internal/geometry"
	"mcpi/internal/metrics"
	"mcpi/internal/numeric"
	"mcpi/internal/relay"
	"mcpi/internal/services/history"
	"mcpi/internal/services/runner"
	"mcpi/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Settings   config.Config
	Log        logr.Logger
	Classifier geometry.Classifier
	Runs       domain.RunStore
	Registry   *prometheus.Registry
	Metrics    *metrics.Recorder
	Relay      domain.RelayClient // nil when no relay URL is configured
	Runner     *runner.Service
	History    domain.HistoryService
	HTTP       *http.Client

	closers []io.Closer // closed in reverse order
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	s := cfg.Settings
	log := cfg.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	classifier, err := NewClassifier(s.Simulation)
	if err != nil {
		return nil, err
	}

	w := &Wire{Settings: s, Log: log, Classifier: classifier}

	switch s.Store.Driver {
	case "sqlite":
		db, err := store.OpenSQLite(s.Store.Path)
		if err != nil {
			return nil, err
		}
		w.Runs = db
		w.closers = append(w.closers, db)
	default:
		w.Runs = store.NewRunFileStore(s.Home)
	}

	w.Registry = cfg.Registry
	if w.Registry == nil {
		w.Registry = prometheus.NewRegistry()
	}
	if w.Metrics, err = metrics.NewRecorder(w.Registry); err != nil {
		w.Close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	// Ensure an HTTP client is available for outbound calls
	w.HTTP = cfg.HTTP
	if w.HTTP == nil {
		w.HTTP = &http.Client{Timeout: s.Relay.Timeout}
	}

	observers := []domain.Observer{w.Metrics}
	if s.Relay.URL != "" {
		rc := relay.NewHTTP(s.Relay.URL, w.HTTP)
		w.Relay = rc
		pub := relay.NewPublisher(rc, s.Relay.Timeout, log.WithName("relay"))
		w.closers = append(w.closers, pub)
		observers = append(observers, pub)
	}

	w.Runner = runner.New(w.Runs, classifier, log.WithName("runner"), observers...)
	w.History = history.New(w.Runs)
	return w, nil
}

// NewClassifier builds the classifier described by the simulation settings.
func NewClassifier(s config.SimulationConfig) (geometry.Classifier, error) {
	b, err := geometry.ParseBoundary(s.Boundary)
	if err != nil {
		return geometry.Classifier{}, err
	}
	return geometry.Classifier{
		Solver:   numeric.Solver{Tolerance: s.Tolerance, MaxIterations: s.MaxIterations},
		Boundary: b,
	}, nil
}

// Close flushes pending relay snapshots and releases the run store.
func (w *Wire) Close() error {
	var errs []error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	w.closers = nil
	return errors.Join(errs...)
}
