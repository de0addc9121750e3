package usecase

import (
	"errors"
	"fmt"
)

// Precondition failures. A send attempted in one of these states is a no-op
// from the user's point of view: nothing is appended and nothing is sent.
var (
	// ErrNoSession is returned when no session is selected.
	ErrNoSession = errors.New("usecase: no current session")
	// ErrNoCredential is returned when no API key is configured.
	ErrNoCredential = errors.New("usecase: no api key configured")
	// ErrEmptyMessage is returned for blank input.
	ErrEmptyMessage = errors.New("usecase: empty message")
	// ErrBusy is returned while a previous send is still awaiting the
	// remote endpoint.
	ErrBusy = errors.New("usecase: send already in flight")
)

type ErrorCode string

const (
	ErrorInvalidCredential ErrorCode = "INVALID_CREDENTIAL"
	ErrorRateLimited       ErrorCode = "RATE_LIMITED"
	ErrorQuotaExceeded     ErrorCode = "QUOTA_EXCEEDED"
	ErrorUpstream          ErrorCode = "UPSTREAM_ERROR"
	ErrorInternal          ErrorCode = "INTERNAL_ERROR"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
