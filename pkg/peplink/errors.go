package peplink

import (
	"errors"
	"fmt"
)

var (
	ErrAuthFailed          = errors.New("authentication failed")
	ErrConnectivity        = errors.New("router unreachable")
	ErrParse               = errors.New("unexpected response shape")
	ErrEndpointUnavailable = errors.New("endpoint unavailable")
	ErrNoSessionCookie     = errors.New("no session cookie in login response")
)

// APIError wraps endpoint-specific failures with request context.
type APIError struct {
	Op       string
	Endpoint string
	Wrapped  error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("peplink %s failed for %s: %v", e.Op, e.Endpoint, e.Wrapped)
}

func (e *APIError) Unwrap() error {
	return e.Wrapped
}
