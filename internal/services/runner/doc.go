// Package runner drives simulation runs to completion and records them.
//
// A run builds a fresh engine seeded for the request, starts it, and ticks it
// on a fixed interval until the engine finishes or the context is cancelled.
// Either way the final counts are persisted as a RunRecord: finished runs with
// status "finished", cancelled runs with status "stopped".
package runner
