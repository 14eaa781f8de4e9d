package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized signals an expired or invalid session credential.
	// Callers treat it as a global sign-out, not a retryable failure.
	ErrUnauthorized = errors.New("session credential rejected")

	// ErrCompanyNotReady is returned by GenerateContent when the
	// upstream company data has not finished preprocessing. It is a
	// readiness signal, not a fatal error: the editor absorbs it into
	// the poller instead of surfacing it.
	ErrCompanyNotReady = errors.New("company data not yet processed")
)

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned status %d", e.Code)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Code, e.Detail)
}

// IsAuthError reports whether err should trigger a sign-out.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
