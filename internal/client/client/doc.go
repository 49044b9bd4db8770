// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. A transport contract for the notes backend (see Client, AuthAPI and
//     NotesAPI): OTP login, the Google login entry URL, and note CRUD.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that sets the
//     bearer token and a request id on every call and maps failures to
//     sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite file and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are returned as
// *StatusError, which matches ErrUnauthorized for 401/403; ServerMessage
// extracts the API's own message for display.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client
