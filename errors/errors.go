package errors

import (
	"errors"
)

var (
	ErrInvalidPath     = errors.New("invalid path")
	ErrAPIError        = errors.New("api error")
	ErrIOError         = errors.New("io error")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrNotWritable     = errors.New("not writable")
	ErrMultipleMatches = errors.New("multiple matches")
)

type wrapError struct {
	underlying []error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

// NewAPIError reports a failure returned by a remote filesystem API.
// The returned error matches both ErrAPIError and ErrIOError.
func NewAPIError(msg string, cause error) error {
	return &wrapError{
		underlying: []error{ErrAPIError, ErrIOError},
		msg:        msg,
		cause:      cause,
	}
}

// NewIOError reports a failure while reading or writing a stream.
func NewIOError(msg string, cause error) error {
	return &wrapError{
		underlying: []error{ErrIOError},
		msg:        msg,
		cause:      cause,
	}
}

// NewNotFoundError reports a missing path. The cause may be nil.
func NewNotFoundError(msg string, cause error) error {
	return &wrapError{
		underlying: []error{ErrNotFound},
		msg:        msg,
		cause:      cause,
	}
}

func (err *wrapError) Error() string {
	if err == nil {
		return "(*wrapError)(nil)"
	}
	message := err.underlying[0].Error() + ": " + err.msg
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

func (err *wrapError) Unwrap() []error {
	if err.cause == nil {
		return err.underlying
	}
	return append(append([]error{}, err.underlying...), err.cause)
}
