package service

import "fmt"

// Validation error codes surfaced to API clients.
const (
	CodeNoDestinations = "NO_DESTINATIONS"
	CodeNoCenter       = "NO_CENTER"
	CodeBadCoordinates = "BAD_COORDINATES"
	CodeBadParameter   = "BAD_PARAMETER"
)

// ValidationError signals malformed or missing request input. Never
// retried internally; surfaced straight to the caller.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// NotFoundError signals that a specifically requested resource does not
// exist. Bulk queries omit unknown ids instead of raising this.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}
