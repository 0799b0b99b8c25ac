package content

import "fmt"

// Error represents a failure to load the content document
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("content error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("content error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
