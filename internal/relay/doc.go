// Package relay forwards simulation snapshots to a central relay server and
// implements that server.
//
// The relay is a store-and-forward service for the latest snapshot of each
// run, so progress can be followed from another process or scraped by
// Prometheus. This package offers:
//   - HTTP, a concrete domain.RelayClient.
//   - Publisher, an engine observer that publishes snapshots in the
//     background, keeping only the latest one per run while the relay is busy.
//   - NewServer, the http.Handler served by cmd/relay.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx statuses are returned as errors with the HTTP method,
// path, and status text to aid diagnostics.
package relay
