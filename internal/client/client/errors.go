package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("endpoint unavailable")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError reports a non-2xx answer. Body holds at most maxErrorBody bytes.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
