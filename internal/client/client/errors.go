package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is returned for any non-2xx response. Message holds the
// server's {"message": ...} field when the body carried one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Code)
}

// Is reports 401/403 responses as ErrUnauthorized.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden)
}

// ServerMessage returns the message the API attached to a failed response,
// or "" when err is not a StatusError or carried none.
func ServerMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
