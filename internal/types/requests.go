package types

// ContactRequest represents the contact form submission.
type ContactRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// Validate validates the ContactRequest using the validator.
func (r *ContactRequest) Validate() error {
	return validate.Struct(r)
}

// ContactResponse carries the composed mailto URI; delivery is left to the user's mail client.
type ContactResponse struct {
	Mailto string `json:"mailto"`
}

// ThemeResponse reports the current theme mode.
type ThemeResponse struct {
	Theme string `json:"theme"`
}

// ValidateStruct validates any struct carrying validate tags with the shared validator.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}
