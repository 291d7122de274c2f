package service_test

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"home-ledger/internal/ledger"
	"home-ledger/internal/repository/sqlite"
)

var (
	alice = ledger.Principal{UserID: "user-alice"}
	bob   = ledger.Principal{UserID: "user-bob"}
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func num(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func dates(t *testing.T, start, end string) ledger.DateRange {
	t.Helper()
	r, err := ledger.ParseDateRange(start, end)
	require.NoError(t, err)
	return r
}

// memStorage is an in-memory avatar store.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Upload(_ context.Context, key string, body io.Reader, _ string) error {
	if m.failPut {
		return io.ErrUnexpectedEOF
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memStorage) PresignURL(_ context.Context, key string, expires time.Duration) (string, error) {
	return "https://objects.test/" + key + "?expires=" + expires.String(), nil
}

func (m *memStorage) object(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[key]
}

func (m *memStorage) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}
