package services

// Route names a client screen.
type Route string

const (
	RouteLogin     Route = "/"
	RouteSignup    Route = "/signup"
	RouteCallback  Route = "/auth/callback"
	RouteDashboard Route = "/dashboard"
)

// SignupNotice is shown on the signup screen. Accounts are created on first
// successful login, so the screen only points back to it.
const SignupNotice = "Sign up with your email: request a one-time code on the login screen, or continue with Google."

// Signup returns where the signup screen leads.
func Signup() Route {
	return RouteLogin
}
