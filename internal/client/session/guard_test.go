package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ MemoryStore }

func (f *failingStore) Get(context.Context) (string, error) { return "", errors.New("disk gone") }

func fixedClock() time.Time { return now }

func TestGuard_NoToken(t *testing.T) {
	g := NewGuard(NewMemoryStore(), fixedClock)
	assert.False(t, g.Authorized(context.Background()))
}

func TestGuard_StoreError(t *testing.T) {
	g := NewGuard(&failingStore{}, fixedClock)
	assert.False(t, g.Authorized(context.Background()))
}

func TestGuard_Decisions(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
		want  bool
	}{
		{name: "future exp", token: func(t *testing.T) string { return mint(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}) }, want: true},
		{name: "exp equals now", token: func(t *testing.T) string { return mint(t, jwt.MapClaims{"exp": now.Unix()}) }, want: false},
		{name: "past exp", token: func(t *testing.T) string { return mint(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}) }, want: false},
		{name: "no exp", token: func(t *testing.T) string { return mint(t, jwt.MapClaims{"email": "a@b.com"}) }, want: false},
		{name: "garbage", token: func(*testing.T) string { return "garbage" }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemoryStore()
			tok := tt.token(t)
			require.NoError(t, store.Set(ctx, tok))

			g := NewGuard(store, fixedClock)
			assert.Equal(t, tt.want, g.Authorized(ctx))

			got, err := store.Get(ctx)
			require.NoError(t, err, "guard must not clear the store")
			assert.Equal(t, tok, got)
		})
	}
}

func TestGuard_ClaimsReturnedWhenAuthorized(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, mint(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix(), "name": "Bob"})))

	c, ok := NewGuard(store, fixedClock).Claims(ctx)
	require.True(t, ok)
	assert.Equal(t, "Bob", c.DisplayName())
}

func TestNewGuard_DefaultsToWallClock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, mint(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})))

	assert.True(t, NewGuard(store, nil).Authorized(ctx))
}
