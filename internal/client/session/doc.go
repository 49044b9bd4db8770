// Package session owns the client-side session lifecycle: the single stored
// token, its unverified decoding, and the guard that gates protected
// screens.
//
// Everything here is advisory. The token's signature is never checked on
// the client; the API re-validates the bearer token on every call. The
// local checks only avoid showing a dashboard for a session that is already
// dead.
//
// Boundary rule: a token is valid only while exp > now. A token whose exp
// equals the current second is already expired.
package session
