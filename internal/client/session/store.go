package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

// Store is the single persistent token slot. It performs no validation.
// Get returns common.ErrNoToken when the slot is empty.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the token in the local metadata table, next to the
// time it was written. Both keys change together: Set runs in one
// transaction and Clear is a single DELETE.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *SQLiteStore) Get(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if len(v) == 0 {
		return "", common.ErrNoToken
	}
	return string(v), nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	storedAt := s.now().UTC().Format(time.RFC3339)
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, common.TokenMetadataKey, []byte(token)); err != nil {
			return err
		}
		return r.Set(ctx, common.TokenStoredAtMetadataKey, []byte(storedAt))
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, common.TokenMetadataKey, common.TokenStoredAtMetadataKey)
}

// StoredAt reports when the current token was written.
// Returns common.ErrNoToken if nothing is stored.
func (s *SQLiteStore) StoredAt(ctx context.Context) (time.Time, error) {
	v, err := s.repo(s.db).Get(ctx, common.TokenStoredAtMetadataKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("read token timestamp: %w", err)
	}
	if len(v) == 0 {
		return time.Time{}, common.ErrNoToken
	}
	return time.Parse(time.RFC3339, string(v))
}

// MemoryStore is a process-local Store, used by tests and -ephemeral runs.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", common.ErrNoToken
	}
	return m.token, nil
}

func (m *MemoryStore) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
