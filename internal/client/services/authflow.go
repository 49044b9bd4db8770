package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// Phase is the step the login form is on.
type Phase int

const (
	PhaseAwaitingEmail Phase = iota
	PhaseAwaitingOTP
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingEmail:
		return "awaiting-email"
	case PhaseAwaitingOTP:
		return "awaiting-otp"
	default:
		return "unknown"
	}
}

const (
	msgInvalidEmail   = "Please enter a valid email address."
	msgSendOTPFailed  = "Failed to send OTP."
	msgNetworkError   = "Network error. Please try again."
	msgEmptyOTP       = "Please enter the OTP."
	msgInvalidOTP     = "Invalid OTP."
	msgVerifyFailed   = "Something went wrong. Please try again."
	msgSessionNotSave = "Could not save the session. Please try again."
)

// AuthFlow drives the email then OTP login form. A fresh flow is created
// each time the login screen is shown and discarded when it is left.
//
// Submissions are not serialized: the caller checks Busy and does not issue
// a second request while one is in flight.
type AuthFlow struct {
	api   client.AuthAPI
	store session.Store
	log   logging.Logger

	phase   Phase
	email   string
	lastErr string

	busy      atomic.Bool
	discarded atomic.Bool
}

func NewAuthFlow(api client.AuthAPI, store session.Store, log logging.Logger) *AuthFlow {
	return &AuthFlow{
		api:   api,
		store: store,
		log:   log.With("component", "authflow"),
		phase: PhaseAwaitingEmail,
	}
}

func (f *AuthFlow) Phase() Phase { return f.phase }

func (f *AuthFlow) Email() string { return f.email }

// LastError is the message from the most recent failed submission, or "".
func (f *AuthFlow) LastError() string { return f.lastErr }

// Busy reports whether a request is in flight.
func (f *AuthFlow) Busy() bool { return f.busy.Load() }

// Discard marks the flow as left. Later responses are dropped.
func (f *AuthFlow) Discard() { f.discarded.Store(true) }

// GoogleLoginURL is where the user starts the identity-provider round trip.
func (f *AuthFlow) GoogleLoginURL() string {
	return f.api.GoogleLoginURL()
}

// SubmitEmail validates the address and asks the API to send a code.
// On success the flow moves to PhaseAwaitingOTP; on failure the phase is
// unchanged and a *UserError is returned.
func (f *AuthFlow) SubmitEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return f.fail(userError(msgInvalidEmail, nil))
	}

	f.busy.Store(true)
	err := f.api.SendOTP(ctx, email)
	f.busy.Store(false)

	if f.discarded.Load() {
		return ErrFlowDiscarded
	}
	if err != nil {
		f.log.Warn(ctx, "send otp failed", "error", err)
		if errors.Is(err, client.ErrUnavailable) {
			return f.fail(userError(msgNetworkError, err))
		}
		return f.fail(userError(messageOr(err, msgSendOTPFailed), err))
	}

	f.email = email
	f.phase = PhaseAwaitingOTP
	f.lastErr = ""
	f.log.Info(ctx, "otp sent", "email", email)
	return nil
}

// SubmitOTP exchanges the code for a session token and stores it. The
// returned route is RouteDashboard only after the token was stored.
func (f *AuthFlow) SubmitOTP(ctx context.Context, otp string) (Route, error) {
	otp = strings.TrimSpace(otp)
	if otp == "" {
		return RouteLogin, f.fail(userError(msgEmptyOTP, nil))
	}

	f.busy.Store(true)
	token, err := f.api.VerifyOTP(ctx, f.email, otp)
	f.busy.Store(false)

	if f.discarded.Load() {
		return RouteLogin, ErrFlowDiscarded
	}
	if err != nil {
		f.log.Warn(ctx, "verify otp failed", "error", err)
		if errors.Is(err, client.ErrUnavailable) {
			return RouteLogin, f.fail(userError(msgVerifyFailed, err))
		}
		return RouteLogin, f.fail(userError(messageOr(err, msgInvalidOTP), err))
	}

	if err := f.store.Set(ctx, token); err != nil {
		f.log.Error(ctx, "store session token", "error", err)
		return RouteLogin, f.fail(userError(msgSessionNotSave, err))
	}

	f.lastErr = ""
	f.log.Info(ctx, "session stored", "email", f.email)
	return RouteDashboard, nil
}

func (f *AuthFlow) fail(err error) error {
	f.lastErr = err.Error()
	return err
}

func messageOr(err error, fallback string) string {
	if m := client.ServerMessage(err); m != "" {
		return m
	}
	return fallback
}
