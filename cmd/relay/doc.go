// Package main runs the in-memory HTTP relay that collects simulation
// snapshots published by mcpi runs.
//
// HTTP API
//
//	POST /snapshots
//	    Store the latest SimulationState of a run, keyed by run_id.
//
//	GET /snapshots
//	    Return the latest snapshot of every run, newest run first.
//
//	GET /snapshots/{run_id}
//	    Return the latest snapshot of one run, or 404.
//
//	GET /metrics
//	    Prometheus exposition of the relay's view: the estimate and
//	    remaining ticks of the most recently received snapshot.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Responses are JSON. Non-2xx statuses carry a short error message.
//   - An access log records method, path, remote, status, bytes and
//     duration for each request.
//   - The default listen address is :8080 (relay.listen, MCPI_RELAY_LISTEN).
package main
