// Package api error taxonomy: network failure, HTTP failure, and
// malformed-response failure, all carrying a best-effort human-readable
// message for the caller to display.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/moogar0880/problems"
)

const problemMediaType = "application/problem+json"

var (
	// ErrInvalidRequest marks client-side validation failures caught
	// before any network call is made.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrMalformedResponse marks a response that was not the JSON
	// envelope the client expects.
	ErrMalformedResponse = errors.New("malformed response")
)

// NetworkError wraps a transport-level failure: the request never
// completed.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx (or success:false) response from the platform.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("HTTP %d", e.Status)
}

func apiError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func malformedResponse(status int, statusLine string) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, statusLine)
}

// problemError maps an RFC 7807 problem document onto the same APIError
// shape the envelope errors use.
func problemError(status int, payload []byte) error {
	var problem problems.DefaultProblem
	if err := json.Unmarshal(payload, &problem); err != nil {
		return malformedResponse(status, http.StatusText(status))
	}

	message := problem.Detail
	if message == "" {
		message = problem.Title
	}

	return apiError(status, message)
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	var netErr *NetworkError

	return errors.As(err, &netErr)
}

// IsAPIError reports whether err is an HTTP-level failure.
func IsAPIError(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr)
}

// IsAuthError reports whether err means the session is missing or stale.
func IsAuthError(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
