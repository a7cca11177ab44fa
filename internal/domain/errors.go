package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAuthentication signals a missing, expired or rejected credential.
	// It is never masked by served-from-cache fallbacks.
	ErrAuthentication = errors.New("authentication failed")

	// ErrBackendUnreachable means no reachability probe got an HTTP answer
	ErrBackendUnreachable = errors.New("backend unreachable")

	// ErrInvalidSessionID marks a session identifier that is not a UUID
	ErrInvalidSessionID = errors.New("invalid session id")

	// ErrSessionNotFound marks a session id the backend does not know
	ErrSessionNotFound = errors.New("session not found")
)

// NoEndpointError means the backend answered probes but none of the known
// candidate routes for an operation worked.
type NoEndpointError struct {
	Operation string
	Attempted []string
}

func (e *NoEndpointError) Error() string {
	return fmt.Sprintf("no working endpoint for %s (tried %s)",
		e.Operation, strings.Join(e.Attempted, ", "))
}

// ServerError carries a backend verdict: the route worked, the request did
// not. The message is the server's own, suitable for showing to the user.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("server rejected request (status %d): %s", e.StatusCode, e.Message)
}
