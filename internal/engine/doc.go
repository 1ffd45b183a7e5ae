// Package engine implements the tick-driven Monte Carlo simulation loop.
//
// # Lifecycle
//
// An Engine moves through three phases:
//
//	idle --Start--> running --Tick (last)--> finished --Start--> running
//	                  |
//	                  +--Stop--> idle
//
// Each Tick while running samples one point, classifies it against the
// domain's inscribed circle, records it in the running statistics and
// decrements the remaining tick count. Observers are notified after every
// tick; OnFinished fires exactly once, on the tick that reaches zero.
//
// # Errors
//
// Start returns domain.ErrInvalidArgument for a non-positive domain size or
// duration and changes nothing. Triggers that are not valid in the current
// phase (Tick or Stop when not running, Start while running) are ignored and
// reported as domain.ErrInvalidStateTransition on the diagnostic channel: the
// logger and the optional WithDiagnostic hook.
//
// # Scheduling
//
// The engine owns no goroutine or timer. The caller decides when ticks
// happen (a ticker, a TUI event loop, a test). Calls are serialised, so a tick
// completes, including all observer notifications, before the next trigger
// is processed. Observers and the diagnostic hook run under that
// serialisation and must not call back into the engine.
package engine
