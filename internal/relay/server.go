package relay

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mcpi/internal/domain"
)

// SnapshotObserver receives every accepted snapshot.
type SnapshotObserver interface {
	ObserveSnapshot(domain.SimulationState)
}

type memoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]domain.SimulationState
}

// ServerOptions configures NewServer.
type ServerOptions struct {
	// Gatherer backs GET /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// Observer is notified of each accepted snapshot. Optional.
	Observer SnapshotObserver
	Log      logr.Logger
}

// NewServer returns the relay's HTTP handler:
//
//	POST /snapshots        store the latest snapshot of a run
//	GET  /snapshots        list latest snapshots, newest run first
//	GET  /snapshots/{id}   latest snapshot of one run
//	GET  /metrics          Prometheus exposition
func NewServer(opts ServerOptions) http.Handler {
	ms := &memoryStore{snapshots: make(map[string]domain.SimulationState)}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /snapshots", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var s domain.SimulationState
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if s.RunID == "" {
			http.Error(w, "run_id required", http.StatusBadRequest)
			return
		}
		ms.mu.Lock()
		ms.snapshots[s.RunID] = s
		ms.mu.Unlock()
		if opts.Observer != nil {
			opts.Observer.ObserveSnapshot(s)
		}
		opts.Log.V(1).Info("snapshot received", "runID", s.RunID, "phase", s.Phase.String(), "remaining", s.RemainingTicks)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /snapshots", func(w http.ResponseWriter, r *http.Request) {
		ms.mu.RLock()
		out := make([]domain.SimulationState, 0, len(ms.snapshots))
		for _, s := range ms.snapshots {
			out = append(out, s)
		}
		ms.mu.RUnlock()
		sort.Slice(out, func(i, j int) bool {
			if out[i].StartedAt.Equal(out[j].StartedAt) {
				return out[i].RunID < out[j].RunID
			}
			return out[i].StartedAt.After(out[j].StartedAt)
		})
		writeJSON(w, out)
	})

	mux.HandleFunc("GET /snapshots/{id}", func(w http.ResponseWriter, r *http.Request) {
		ms.mu.RLock()
		s, ok := ms.snapshots[r.PathValue("id")]
		ms.mu.RUnlock()
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, s)
	})

	if opts.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return accessLog(opts.Log, mux)
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func accessLog(log logr.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		log.Info("request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr,
			"status", sw.status, "bytes", sw.bytes, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
