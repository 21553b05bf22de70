package api

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is the single failure kind the service layer reports.
// Transport, status and decode failures all wrap it.
var ErrRequestFailed = errors.New("request failed")

// StatusError records a non-2xx response. It is for diagnostics only;
// callers should match on ErrRequestFailed.
type StatusError struct {
	Op     string
	Method string
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s %s: status %d", e.Op, e.Method, e.Path, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrRequestFailed }

// failed wraps a transport or decode error so it matches ErrRequestFailed.
func failed(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrRequestFailed, err)
}
