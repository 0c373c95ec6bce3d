package moltbook

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrMissingAPIKey is returned by New when no credential is supplied.
	ErrMissingAPIKey = errors.New("moltbook: api key is required")

	// ErrTransport matches every *TransportError.
	ErrTransport = errors.New("moltbook: transport failure")

	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("moltbook: response is not valid JSON")
)

// maxErrorBody caps the response excerpt kept on a DecodeError.
const maxErrorBody = 512

// TransportError reports that the request never produced a readable
// response: the connection was refused, timed out, or the context ended.
// It is never retried.
type TransportError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("moltbook: %s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// DecodeError reports a response body that could not be parsed as JSON,
// for example an HTML error page served by a proxy.
type DecodeError struct {
	Method     string
	Endpoint   string
	StatusCode int
	// Body holds at most the first 512 bytes of the response.
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("moltbook: %s %s: decode response (http %d): %v", e.Method, e.Endpoint, e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// APIError is the error a service reported inside a response body. The
// client never returns it on its own; see Response.ServiceError.
type APIError struct {
	StatusCode int
	Message    string
	Hint       string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Hint != "" {
		return fmt.Sprintf("http %d: %s (%s)", e.StatusCode, msg, e.Hint)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, msg)
}

func truncateBody(b []byte) []byte {
	if len(b) <= maxErrorBody {
		return b
	}
	out := make([]byte, maxErrorBody)
	copy(out, b)
	return out
}
