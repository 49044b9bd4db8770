// Package cli provides the interactive notes client.
//
// It wires configuration, the local session store, the REST API client and
// the redirect listener, then runs a REPL over two screens:
//
//   - login: request a one-time code by email and submit it, or sign in
//     with Google and let the redirect arrive at the local listener
//     (or paste it with "callback <url>").
//   - dashboard: list, add, edit and delete notes, inspect the session,
//     log out.
//
// Every dashboard command re-checks the stored token first; an expired or
// missing session sends the user back to the login screen.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
