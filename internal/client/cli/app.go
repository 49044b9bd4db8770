package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/callback"
	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	logger logging.Logger
	api    client.Client
	store  session.Store
	guard  *session.Guard
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	callbacks *services.CallbackHandler
	dashboard *services.Dashboard
	listener  *callback.Server
	closers   []func() error

	route services.Route
	flow  *services.AuthFlow
}

// NewApp opens the local session store and builds the API client. With
// c.Ephemeral set no database is opened.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.Verbose)

	api, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}

	var (
		store   session.Store
		closers []func() error
	)
	if c.Ephemeral {
		store = session.NewMemoryStore()
	} else {
		if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
			return nil, err
		}
		db, err := client.InitDatabase(ctx, c.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		store = session.NewSQLiteStore(db)
		closers = append(closers, db.Close)
	}

	a := newApp(c, api, store, logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.closers = closers
	return a, nil
}

func newApp(c *config.Config, api client.Client, store session.Store, logger logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		logger: logger,
		api:    api,
		store:  store,
		reader: reader,
		out:    out,
		now:    time.Now,
	}
	a.guard = session.NewGuard(store, a.clock)
	a.callbacks = services.NewCallbackHandler(store, a.clock, logger)
	a.dashboard = services.NewDashboard(api, store, a.clock, logger)
	return a
}

func (a *App) clock() time.Time {
	return a.now()
}

// Run starts the redirect listener, opens the first screen and blocks in the
// REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	var routes <-chan services.Route
	listener := callback.NewServer(a.config.CallbackAddr, a.callbacks, a.logger)
	if err := listener.Start(ctx); err != nil {
		a.logger.Warn(ctx, "callback listener unavailable, use 'callback <url>' instead", "error", err)
	} else {
		a.listener = listener
		routes = listener.Routes()
	}

	printlnFn("Welcome to GophNotes (type 'help' for commands)")
	if a.guard.Authorized(ctx) {
		a.navigate(ctx, services.RouteDashboard)
	} else {
		a.navigate(ctx, services.RouteLogin)
	}

	runREPL(ctx, a, a.status, a.reader, routes)
	return nil
}

func (a *App) close() {
	if a.listener != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.listener.Shutdown(ctx); err != nil {
			a.logger.Warn(ctx, "callback listener shutdown", "error", err)
		}
	}
	for _, c := range a.closers {
		_ = c()
	}
}

func (a *App) screen() services.Route {
	return a.route
}

// navigate switches screens. Entering the login screen always starts a new
// auth flow; leaving it discards the current one.
func (a *App) navigate(ctx context.Context, r services.Route) {
	if r != services.RouteLogin && a.flow != nil {
		a.flow.Discard()
		a.flow = nil
	}

	switch r {
	case services.RouteDashboard:
		next, err := a.dashboard.Open(ctx)
		if next != services.RouteDashboard {
			a.enterLogin()
			return
		}
		a.route = services.RouteDashboard
		printlnFn(fmt.Sprintf("Welcome, %s!", a.dashboard.User()))
		if err != nil {
			a.report(ctx, err)
			return
		}
		a.printNotes()

	case services.RouteSignup:
		printlnFn(services.SignupNotice)
		a.navigate(ctx, services.Signup())

	default:
		a.enterLogin()
	}
}

func (a *App) enterLogin() {
	if a.flow != nil {
		a.flow.Discard()
	}
	a.flow = services.NewAuthFlow(a.api, a.store, a.logger)
	a.route = services.RouteLogin
	printlnFn("Log in: 'email' to receive a one-time code, or 'google'.")
}

func (a *App) status() string {
	switch a.route {
	case services.RouteDashboard:
		return fmt.Sprintf("(%s)", a.dashboard.User())
	case services.RouteLogin:
		if a.flow != nil && a.flow.Phase() == services.PhaseAwaitingOTP {
			return fmt.Sprintf("(otp %s)", a.flow.Email())
		}
		return "(login)"
	default:
		return ""
	}
}

// msgRejectedSession follows the server's message when the API answered
// 401 or 403. The local session is kept.
const msgRejectedSession = "The server did not accept this session. Use 'logout' and log in again."

// report prints err for the user and follows it when it ends the session.
// It returns err so handlers can end with "return a.report(ctx, err)".
func (a *App) report(ctx context.Context, err error) error {
	var ue *services.UserError
	switch {
	case err == nil:
	case errors.Is(err, services.ErrLoginRequired):
		printlnFn("Your session has expired. Please log in again.")
		a.navigate(ctx, services.RouteLogin)
	case errors.Is(err, services.ErrFlowDiscarded):
	case errors.As(err, &ue):
		printlnFn(ue.Message)
		if errors.Is(err, client.ErrUnauthorized) {
			printlnFn(msgRejectedSession)
		}
	default:
		printlnFn("Error:", err)
	}
	return err
}
