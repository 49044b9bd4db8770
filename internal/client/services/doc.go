// Package services holds the client's screen-level logic: the email/OTP
// login flow, the identity-provider redirect callback and the notes
// dashboard. Services return routes and user-facing errors; rendering is
// left to the cli package.
package services
