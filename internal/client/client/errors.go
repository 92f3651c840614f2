package client

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRejected     = errors.New("request rejected")
)

// APIError is a backend failure. Message is the human-readable text supplied
// by the server, empty when the failure happened below the application (for
// example a dropped connection). Err is one of the sentinels above.
type APIError struct {
	Code    codes.Code
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (%s)", e.Err, e.Code)
	}
	return fmt.Sprintf("%v (%s): %s", e.Err, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ServerMessage returns the server-supplied message carried by err, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
