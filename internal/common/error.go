// Package common defines shared constants and sentinel errors used across
// the client layers of GophNotes. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNoToken = errors.New("no token stored")

	// Auth errors (absent, malformed or undecodable token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
