package idanalyzer

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every local validation failure.
var ErrInvalidArgument = errors.New("invalid argument")

// invalidArgument formats a validation error wrapping ErrInvalidArgument.
func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// HTTPError is returned when the API answers with a non-2xx status.
type HTTPError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Status is the status line text, e.g. "502 Bad Gateway".
	Status string

	// Body holds the raw response body, possibly empty.
	Body string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// APIError is the error object the API embeds in a response body.
//
// In strict mode (ThrowAPIError(true)) action methods return it as an error.
// In the default mode it is available through Response.Err.
type APIError struct {
	// Code is the numeric API error code, 0 if the API did not send one.
	Code int

	// Message is the human-readable error message.
	Message string

	// Details is the full error object as decoded from JSON. It is nil when
	// the API sent a bare string instead of an object.
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}
