// Package metadata stores small key/value records in the local client
// database. The session token lives here.
package metadata

import (
	"context"
)

// Repository is a key/value table. Get returns (nil, nil) for a missing key.
// Delete removes every listed key; absent keys are not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
