package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/blkdmnd/visual-thesis/internal/alignment"
	"github.com/blkdmnd/visual-thesis/internal/chat"
	"github.com/blkdmnd/visual-thesis/internal/contact"
	"github.com/blkdmnd/visual-thesis/internal/fetch"
	"github.com/blkdmnd/visual-thesis/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// StatusClientClosedRequest reports a request abandoned by the client
// before a response was written.
const StatusClientClosedRequest = 499

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		notFoundErr    *ErrNotFound
		chatInput      *chat.ValidationError
		alignmentInput *alignment.ValidationError
		contactInput   *contact.ValidationError
		analysisErr    *alignment.AnalysisError
		fetchErr       *fetch.Error
	)

	switch {
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.As(err, &validationErr), errors.As(err, &chatInput),
		errors.As(err, &alignmentInput), errors.As(err, &contactInput):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr), errors.Is(err, chat.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat.ErrTurnInFlight):
		return http.StatusConflict
	case errors.Is(err, ingestion.ErrEmptyDescription):
		return http.StatusUnprocessableEntity
	case errors.As(err, &analysisErr), errors.Is(err, ingestion.ErrHTTPRequestFailed):
		return http.StatusBadGateway
	case errors.As(err, &fetchErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the text shown to clients for err. Upstream failures
// get fixed messages; raw provider errors are only logged.
func publicMessage(err error) string {
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	var analysisErr *alignment.AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr.UserMessage()
	}
	switch HTTPStatus(err) {
	case http.StatusInternalServerError:
		return "internal server error"
	case http.StatusBadGateway:
		return "the job posting could not be retrieved"
	default:
		return err.Error()
	}
}
