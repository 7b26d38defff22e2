package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInvalidArgument is returned for bad configuration or a blank
	// required field. Such calls fail fast and are never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEncoding is returned when the document cannot be serialized.
	ErrEncoding = errors.New("document encoding failed")

	// ErrTransport is returned when the HTTP request could not be completed
	// (connection, DNS, TLS, timeout). The permit consumed for the attempt
	// is not refunded.
	ErrTransport = errors.New("transport failed")

	// ErrRemoteRejected is returned when the registry answers with a status
	// outside [200, 300).
	ErrRemoteRejected = errors.New("registry rejected request")
)

// RemoteError is returned when the registry responds with a non-2xx status.
// It keeps the status code and the verbatim response body so the failure can
// be diagnosed without calling the registry again.
type RemoteError struct {
	// StatusCode is the HTTP status returned by the registry.
	StatusCode int
	// Body is the raw response body text.
	Body string
}

// Error returns a human-readable description of the rejection.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("registry error: HTTP %d - %s", e.StatusCode, e.Body)
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrRemoteRejected).
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteRejected
}

// TransportError is returned when the request never produced an HTTP
// response. There is no status code to report.
type TransportError struct {
	// Cause is the underlying connection-level error.
	Cause error
}

// Error returns a human-readable description of the transport failure.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Cause)
}

// Unwrap returns the underlying error cause.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrTransport).
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
