package api

import (
	"errors"
	"fmt"
	"net/http"

	"deployctl/internal/deploy"
)

// APIError is a non-2xx answer from the backend. Message is the {error} field of the
// body when present, otherwise the HTTP status text.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string

	fromBody bool
}

func (e *APIError) Error() string {
	return e.Message
}

// NotFound reports whether the backend answered 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// TransportError wraps a failure to reach the backend or to decode its answer.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsAPIError extracts the backend error from err.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTransportError reports whether err came from the network or decoding layer.
func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// UserMessage turns err into the text shown in notifications: the backend message
// verbatim for API errors, fallback otherwise.
func UserMessage(err error, fallback string) string {
	if apiErr, ok := IsAPIError(err); ok && apiErr.Message != "" {
		return deploy.ErrorNotice(apiErr.Message)
	}
	return fallback
}
