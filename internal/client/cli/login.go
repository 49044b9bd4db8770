package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/services"
)

// Indirections over the interactive input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getSecret     = GetSecret
	getMultiline  = GetMultiline
)

var errBusy = errors.New("request in flight")

func (a *App) loginFlow() *services.AuthFlow {
	if a.flow == nil {
		a.enterLogin()
	}
	return a.flow
}

// Email sends a one-time code to the given address, prompting for it when
// no argument was supplied.
func (a *App) Email(ctx context.Context, args []string) error {
	if a.loginFlow().Busy() {
		printlnFn("Please wait for the current request to finish.")
		return errBusy
	}

	email := strings.Join(args, " ")
	if email == "" {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	if err := a.loginFlow().SubmitEmail(ctx, email); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("A one-time code was sent to " + a.loginFlow().Email() + ". Enter it with 'otp'.")
	return nil
}

// OTP submits the code and opens the dashboard once the session is stored.
func (a *App) OTP(ctx context.Context, args []string) error {
	if a.loginFlow().Phase() != services.PhaseAwaitingOTP {
		printlnFn("Request a code first with 'email'.")
		return nil
	}
	if a.loginFlow().Busy() {
		printlnFn("Please wait for the current request to finish.")
		return errBusy
	}

	otp := strings.Join(args, "")
	if otp == "" {
		var err error
		if otp, err = getSecret(a.reader, "Enter OTP", a.out); err != nil {
			return err
		}
	}

	route, err := a.loginFlow().SubmitOTP(ctx, otp)
	if err != nil {
		return a.report(ctx, err)
	}
	a.navigate(ctx, route)
	return nil
}

// Google prints the address that starts the identity-provider login.
func (a *App) Google(ctx context.Context) error {
	printlnFn("Open this address in your browser to continue with Google:")
	printlnFn("  " + a.loginFlow().GoogleLoginURL())
	if a.listener != nil {
		printlnFn("The login completes here once the browser is redirected to " + a.listener.URL() + ".")
	} else {
		printlnFn("When the browser shows the redirect address, paste it here with: callback <url>")
	}
	return nil
}

// Callback handles a redirect URL pasted by the user.
func (a *App) Callback(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: callback <url>")
		return nil
	}
	route := a.callbacks.Handle(ctx, args[0])
	if route != services.RouteDashboard {
		printlnFn("Login failed: the redirect did not carry a valid session.")
	}
	a.navigate(ctx, route)
	return nil
}

func (a *App) Signup(ctx context.Context) error {
	a.navigate(ctx, services.RouteSignup)
	return nil
}
