package orchestrator

import "errors"

var (
	// ErrUnknownField is returned when an event names a field the form does
	// not have.
	ErrUnknownField = errors.New("orchestrator: unknown field")
	// ErrNoHandler is returned by Dispatch when no handler is registered for
	// the event's field and trigger.
	ErrNoHandler = errors.New("orchestrator: no handler registered")
)
