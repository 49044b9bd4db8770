package session

import (
	"context"
	"time"
)

// Guard gates protected screens. It only reads the store.
type Guard struct {
	store Store
	now   func() time.Time
}

func NewGuard(store Store, now func() time.Time) *Guard {
	if now == nil {
		now = time.Now
	}
	return &Guard{store: store, now: now}
}

// Authorized reports whether a stored, decodable, unexpired token exists.
func (g *Guard) Authorized(ctx context.Context) bool {
	_, ok := g.Claims(ctx)
	return ok
}

// Claims returns the stored token's claims when Authorized would be true.
func (g *Guard) Claims(ctx context.Context) (*Claims, bool) {
	token, err := g.store.Get(ctx)
	if err != nil {
		return nil, false
	}
	claims, err := Validate(token, g.now())
	if err != nil {
		return nil, false
	}
	return claims, true
}
