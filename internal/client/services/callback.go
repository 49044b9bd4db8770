package services

import (
	"context"
	"net/url"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// CallbackHandler finishes the identity-provider login: the provider sends
// the user back to RouteCallback with the session token in ?token=.
type CallbackHandler struct {
	store session.Store
	now   func() time.Time
	log   logging.Logger
}

func NewCallbackHandler(store session.Store, now func() time.Time, log logging.Logger) *CallbackHandler {
	if now == nil {
		now = time.Now
	}
	return &CallbackHandler{store: store, now: now, log: log.With("component", "callback")}
}

// Handle inspects the redirect URL and returns the next screen.
//
// Without a token the user goes back to login and the store is untouched.
// A token that cannot be decoded or has expired clears the store. A valid
// token replaces whatever was stored before.
func (h *CallbackHandler) Handle(ctx context.Context, rawURL string) Route {
	u, err := url.Parse(rawURL)
	if err != nil {
		h.log.Warn(ctx, "unparsable callback url", "error", err)
		return RouteLogin
	}

	token := u.Query().Get("token")
	if token == "" {
		h.log.Info(ctx, "callback without token")
		return RouteLogin
	}

	claims, err := session.Validate(token, h.now())
	if err != nil {
		h.log.Warn(ctx, "callback token rejected", "error", err)
		if cerr := h.store.Clear(ctx); cerr != nil {
			h.log.Error(ctx, "clear session token", "error", cerr)
		}
		return RouteLogin
	}

	if err := h.store.Set(ctx, token); err != nil {
		h.log.Error(ctx, "store session token", "error", err)
		return RouteLogin
	}

	h.log.Info(ctx, "session stored", "email", claims.Email, "expires", claims.Expiry())
	return RouteDashboard
}
