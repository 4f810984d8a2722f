package metrics

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the metrics API
type APIError struct {
	StatusCode int
	Path       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("metrics API error (status %d) on %s: %s: %v", e.StatusCode, e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("metrics API error (status %d) on %s: %s", e.StatusCode, e.Path, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ValidationError represents invalid input to client methods
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: invalid %s: %s", e.Field, e.Value)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, path, message string, err error) error {
	return &APIError{
		StatusCode: statusCode,
		Path:       path,
		Message:    message,
		Err:        err,
	}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, value string) error {
	return &ValidationError{
		Field: field,
		Value: value,
	}
}

// IsNotFound reports whether err is a 404 from the metrics API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
