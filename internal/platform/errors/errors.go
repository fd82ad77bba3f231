package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrConfiguration  = errors.New("configuration error")
	ErrLoginFailed    = errors.New("login failed")
	ErrFetchFailed    = errors.New("fetch failed")
	ErrMarkerNotFound = errors.New("splice marker not found")
)

// StatusError reports a non-success response from the remote API.
type StatusError struct {
	Kind       error
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v with status code %d: %s", e.Kind, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}
