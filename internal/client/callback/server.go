// Package callback runs the local HTTP listener that receives the identity
// provider's redirect and hands the resulting route to the REPL.
package callback

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/netx"
)

const (
	pageSuccess = "Login complete. You can close this tab and return to the terminal.\n"
	pageFailure = "Login failed. Return to the terminal and try again.\n"
)

// Handler turns a redirect URL into the next route.
type Handler interface {
	Handle(ctx context.Context, rawURL string) services.Route
}

type Server struct {
	address string
	handler Handler
	logger  logging.Logger

	routes chan services.Route
	ln     net.Listener
	srv    *http.Server
	done   chan struct{}
}

func NewServer(address string, h Handler, l logging.Logger) *Server {
	return &Server{
		address: address,
		handler: h,
		logger:  l.With("module", "callback_server"),
		routes:  make(chan services.Route, 4),
	}
}

// Routes delivers the route produced by each callback request.
func (s *Server) Routes() <-chan services.Route {
	return s.routes
}

// URL is the callback address to register with the API, valid after Start.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return netx.BaseURL(s.ln) + string(services.RouteCallback)
}

// Start binds the listener and serves in the background until ctx is done
// or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.srv != nil {
		return errors.New("callback server already started")
	}

	ln, err := netx.Listen(ctx, s.address)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+string(services.RouteCallback), s.serveCallback)

	s.ln = ln
	s.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.logger.Info(ctx, "Starting callback listener", "url", s.URL())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(ctx, "callback listener stopped", "error", err)
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = s.srv.Shutdown(shutdownCtx)
		case <-s.done:
		}
	}()

	return nil
}

// Shutdown stops the listener and waits for the serve loop to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	s.logger.Info(ctx, "Stopping callback listener...")
	err := s.srv.Shutdown(ctx)
	select {
	case <-s.done:
	case <-ctx.Done():
		return fmt.Errorf("callback listener shutdown: %w", ctx.Err())
	}
	return err
}

func (s *Server) serveCallback(w http.ResponseWriter, r *http.Request) {
	route := s.handler.Handle(r.Context(), r.URL.String())

	select {
	case s.routes <- route:
	default:
		s.logger.Warn(r.Context(), "callback route dropped, nobody is reading", "route", route)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if route == services.RouteDashboard {
		_, _ = w.Write([]byte(pageSuccess))
		return
	}
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(pageFailure))
}
