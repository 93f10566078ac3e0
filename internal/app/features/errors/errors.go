// internal/app/features/errors/errors.go
package errors

import (
	"fmt"
	"net/http"
)

// Stable machine-readable error codes returned in the "code" field.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
)

// Error is an API failure with the HTTP status it maps to.
// Message is safe to show to callers; it never carries raw causes.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NotFound reports that identifier of the given resource kind does not exist,
// e.g. NotFound("File", "tos.txt") -> "File 'tos.txt' not found".
func NotFound(resource, identifier string) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, identifier),
	}
}

// MethodNotAllowed reports a known route requested with the wrong verb.
func MethodNotAllowed(method, path string) *Error {
	return &Error{
		Status:  http.StatusMethodNotAllowed,
		Code:    CodeMethodNotAllowed,
		Message: fmt.Sprintf("Method %s not allowed on '%s'", method, path),
	}
}

// TooManyRequests is returned by rate-limited routes.
func TooManyRequests() *Error {
	return &Error{
		Status:  http.StatusTooManyRequests,
		Code:    CodeRateLimited,
		Message: "Too many requests. Please wait a minute before trying again.",
	}
}

// Internal is the generic failure for anything unexpected.
func Internal() *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "An unexpected error occurred.",
	}
}
