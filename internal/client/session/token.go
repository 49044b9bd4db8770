package session

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the part of the token payload the client relies on.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims

	// exp keeps the sub-second part of the exp claim, which
	// jwt.NumericDate truncates to whole seconds.
	exp time.Time
}

// DisplayName prefers the name claim and falls back to the email.
func (c *Claims) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Email
}

// Expiry returns the exp claim at full precision, or the zero time when
// the token had none.
func (c *Claims) Expiry() time.Time {
	if !c.exp.IsZero() {
		return c.exp
	}
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

var parser = jwt.NewParser(jwt.WithoutClaimsValidation())

// Decode reads the token payload without verifying its signature.
// Any structural problem, and a missing exp, yields common.ErrInvalidToken.
func Decode(token string) (*Claims, error) {
	if token == "" {
		return nil, common.ErrInvalidToken
	}
	claims := &Claims{}
	_, parts, err := parser.ParseUnverified(token, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp", common.ErrInvalidToken)
	}
	if claims.exp, err = exactExpiry(parts[1]); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return claims, nil
}

// exactExpiry re-reads exp from the payload segment as a float number of
// seconds.
func exactExpiry(payload string) (time.Time, error) {
	raw, err := parser.DecodeSegment(payload)
	if err != nil {
		return time.Time{}, err
	}
	var p struct {
		Exp json.Number `json:"exp"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return time.Time{}, err
	}
	f, err := p.Exp.Float64()
	if err != nil {
		return time.Time{}, fmt.Errorf("exp: %w", err)
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)), nil
}

// IsExpired is fail-closed: nil claims count as expired. Otherwise the token
// is expired once now has reached exp.
func IsExpired(claims *Claims, now time.Time) bool {
	if claims == nil {
		return true
	}
	exp := claims.Expiry()
	if exp.IsZero() {
		return true
	}
	return !exp.After(now)
}

// Validate decodes token and rejects it when expired at now.
func Validate(token string, now time.Time) (*Claims, error) {
	claims, err := Decode(token)
	if err != nil {
		return nil, err
	}
	if IsExpired(claims, now) {
		return nil, common.ErrTokenExpired
	}
	return claims, nil
}
