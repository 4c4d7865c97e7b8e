// Package apierror provides the error envelopes returned to the admin UI.
// Backend failures are flattened to their message; internal errors never leak.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// Confirmation is returned when a destructive action needs explicit
// confirmation; the client repeats the request with Confirm appended.
type Confirmation struct {
	Detail  string `json:"detail"`
	Confirm string `json:"confirm"`
}

func NewConfirmation(msg, confirmURL string) *Confirmation {
	return &Confirmation{Detail: msg, Confirm: confirmURL}
}
