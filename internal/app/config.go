package app

import (
	"net/http"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"mcpi/internal/config"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Settings config.Config        // loaded and validated settings
	Log      logr.Logger          // defaults to a discarding logger
	HTTP     *http.Client         // optional; defaults to a client with Settings.Relay.Timeout
	Registry *prometheus.Registry // optional; a fresh registry is created otherwise
}
