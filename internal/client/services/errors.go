package services

import "errors"

var (
	// ErrLoginRequired means the stored session is missing or no longer
	// valid and the caller should return to the login screen.
	ErrLoginRequired = errors.New("login required")

	// ErrFlowDiscarded is returned for responses that arrived after the
	// login screen was left.
	ErrFlowDiscarded = errors.New("auth flow discarded")
)

// UserError carries a message meant for the person at the terminal.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func userError(msg string, err error) error {
	return &UserError{Message: msg, Err: err}
}
