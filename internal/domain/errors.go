package domain

import "errors"

var (
	// ErrInvalidArgument marks a precondition violation. Operations that
	// return it leave all state untouched.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidStateTransition marks a trigger that is not allowed in the
	// engine's current phase. It is reported on the diagnostic channel and
	// the trigger is ignored.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrRunNotFound is returned by lookups for an unknown run ID.
	ErrRunNotFound = errors.New("run not found")
)
