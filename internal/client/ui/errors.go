package ui

import "errors"

var (
	// ErrValidation wraps every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrCredentialRejected wraps a failed login or register call.
	ErrCredentialRejected = errors.New("credentials rejected")

	// ErrMissingToken is a login response without a token.
	ErrMissingToken = errors.New("login response has no token")

	// ErrSessionNotSaved is a decoded login that could not be persisted.
	ErrSessionNotSaved = errors.New("session not saved")

	// ErrSubmissionInFlight rejects a submit while another one is running.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrControllerClosed is returned by a form that has been torn down,
	// including for completions that arrive after teardown.
	ErrControllerClosed = errors.New("controller closed")

	ErrUnknownField     = errors.New("unknown form field")
	ErrUnknownMode      = errors.New("unknown form mode")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyMounted   = errors.New("header already mounted")
)

// ValidationError names the first form field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
