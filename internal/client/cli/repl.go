package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	screen() services.Route
	navigate(ctx context.Context, r services.Route)

	Email(ctx context.Context, args []string) error
	OTP(ctx context.Context, args []string) error
	Google(ctx context.Context) error
	Callback(ctx context.Context, args []string) error
	Signup(ctx context.Context) error

	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpLogin     = "Available commands: email [address], otp [code], google, callback <url>, signup, exit"
	helpDashboard = "Available commands: (l)ist, add, edit <id>, delete <id>, whoami, refresh, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the notes CLI.
//
// It parses the first token of each line as the command and dispatches it
// according to the current screen. Routes published by the redirect
// listener are applied as soon as they arrive, also while the prompt is
// waiting for input. The loop exits on EOF, on a cancelled ctx, or when
// the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, routes <-chan services.Route) {
	for {
		drainRoutes(ctx, a, routes)
		if ctx.Err() != nil {
			return
		}

		printPrompt(statusFn)
		line, ok := awaitLine(ctx, a, statusFn, reader, routes)
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			if a.screen() == services.RouteDashboard {
				printlnFn(helpDashboard)
			} else {
				printlnFn(helpLogin)
			}
			continue
		}

		if a.screen() == services.RouteDashboard {
			dashboardCommand(ctx, a, cmd, args)
		} else {
			loginCommand(ctx, a, cmd, args)
		}
	}
}

func printPrompt(statusFn func() string) {
	printlnFn(fmt.Sprintf("notes %s> ", statusFn()))
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one line in the background. Only one read is in flight
// at a time: command handlers prompt on the same reader after it returned.
func readLine(reader *bufio.Reader) <-chan lineResult {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := reader.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()
	return ch
}

// awaitLine waits for the next input line and applies routes that arrive
// in the meantime, repeating the prompt for the new screen. It reports
// false on EOF or when ctx is done.
func awaitLine(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, routes <-chan services.Route) (string, bool) {
	lines := readLine(reader)
	for {
		select {
		case res := <-lines:
			if res.err != nil && res.line == "" {
				return "", false
			}
			return res.line, true
		case r := <-routes:
			a.navigate(ctx, r)
			printPrompt(statusFn)
		case <-ctx.Done():
			return "", false
		}
	}
}

func drainRoutes(ctx context.Context, a execIface, routes <-chan services.Route) {
	for {
		select {
		case r := <-routes:
			a.navigate(ctx, r)
		default:
			return
		}
	}
}

func loginCommand(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "email":
		_ = a.Email(ctx, args)
	case "otp":
		_ = a.OTP(ctx, args)
	case "google":
		_ = a.Google(ctx)
	case "callback":
		_ = a.Callback(ctx, args)
	case "signup":
		_ = a.Signup(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func dashboardCommand(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "l", "list":
		_ = a.List(ctx)
	case "add":
		_ = a.Add(ctx)
	case "edit":
		_ = a.Edit(ctx, args)
	case "delete":
		_ = a.Delete(ctx, args)
	case "whoami":
		_ = a.WhoAmI(ctx)
	case "refresh":
		_ = a.Refresh(ctx)
	case "logout":
		_ = a.Logout(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}
