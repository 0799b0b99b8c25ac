// Package contact composes recruiter inquiry links. Nothing is sent server-side;
// the visitor's mail client delivers the message.
package contact

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/blkdmnd/visual-thesis/internal/types"
)

// ValidationError represents a rejected contact form field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Recipient is the inquiry destination.
type Recipient struct {
	Owner string
	Email string
}

// ComposeMailto validates msg and returns a mailto URI addressed to to.
func ComposeMailto(to Recipient, msg types.ContactRequest) (string, error) {
	msg.Email = strings.TrimSpace(msg.Email)
	if strings.TrimSpace(msg.Message) == "" {
		msg.Message = ""
	}
	if err := msg.Validate(); err != nil {
		return "", toValidationError(err)
	}

	subject := fmt.Sprintf("Recruiter Inquiry for %s from %s", to.Owner, msg.Email)
	body := fmt.Sprintf("From: %s\n\nMessage:\n%s", msg.Email, msg.Message)

	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", to.Email, encode(subject), encode(body)), nil
}

// encode percent-encodes s for a mailto query, with spaces as %20.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "request", Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Message: "is required"}
	case "email":
		return &ValidationError{Field: field, Message: "must be a valid email address"}
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("failed %s check", fe.Tag())}
	}
}
