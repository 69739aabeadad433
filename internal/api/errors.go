package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds. Every error returned by Client wraps exactly one of them.
var (
	// ErrInvalidCredentials indicates the login was rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a missing or expired token on a protected call.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates a stale or unknown identifier.
	ErrNotFound = errors.New("not found")
	// ErrValidationFailed indicates malformed fields, either rejected by the
	// server or found in a response that does not match its schema.
	ErrValidationFailed = errors.New("validation failed")
	// ErrNetwork indicates no response was received.
	ErrNetwork = errors.New("network error")
	// ErrServer indicates a 5xx response.
	ErrServer = errors.New("server error")
)

// StatusError is a non-2xx response.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Kind    error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.Status, http.StatusText(e.Status), e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}

// KindForStatus maps an HTTP status to a failure kind. It returns nil for
// 2xx statuses.
func KindForStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return ErrServer
	default:
		return ErrValidationFailed
	}
}

// Message returns the user-facing text for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, ErrUnauthorized):
		return "Session expired, please sign in again"
	case errors.Is(err, ErrNotFound):
		return "Not found, it may have been deleted"
	case errors.Is(err, ErrValidationFailed):
		var se *StatusError
		if errors.As(err, &se) && se.Message != "" {
			return "Rejected: " + se.Message
		}
		return "Rejected: invalid data"
	case errors.Is(err, ErrNetwork):
		return "Cannot reach the server"
	case errors.Is(err, ErrServer):
		return "Server error, try again later"
	default:
		return err.Error()
	}
}

// LoginMessage returns the text shown on the login form for a failed
// login.
func LoginMessage(err error) string {
	if errors.Is(err, ErrInvalidCredentials) {
		return "Invalid credentials"
	}
	return "Login failed"
}
