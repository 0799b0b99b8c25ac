package alignment

import "fmt"

// ValidationError represents a rejected alignment input
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

// AnalysisError represents a failed analysis: the provider call failed or
// its response did not satisfy the output schema.
type AnalysisError struct {
	Message string
	Cause   error
	// Raw is the cleaned model output when one was received.
	Raw string
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// UserMessage is the message shown to users for any AnalysisError.
func (e *AnalysisError) UserMessage() string {
	return UserErrorMessage
}
