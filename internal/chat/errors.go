package chat

import (
	"errors"
	"fmt"
)

// ErrTurnInFlight is returned when a session already has a turn awaiting its reply.
var ErrTurnInFlight = errors.New("chat: a reply is already in progress")

// ErrSessionNotFound is returned by Store lookups for unknown or evicted sessions.
var ErrSessionNotFound = errors.New("chat: session not found")

// ValidationError represents a rejected chat input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// InstructionError represents a failure building the system instruction
type InstructionError struct {
	Message string
	Cause   error
}

func (e *InstructionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("system instruction: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("system instruction: %s", e.Message)
}

func (e *InstructionError) Unwrap() error {
	return e.Cause
}
