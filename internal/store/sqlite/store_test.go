package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstoreapp/bookstore-server/internal/logger"
	"github.com/bookstoreapp/bookstore-server/internal/store"
	"github.com/bookstoreapp/bookstore-server/internal/store/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"), logger.Discard().Logger, 0)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Catalog {
		return newTestStore(t)
	})
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	var journalMode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	for _, table := range []string{"books", "magazines"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
	assert.Equal(t, store.DefaultTimeout, s.timeout)
}

func TestOpenClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	s, err := Open(path, nil, 0)
	require.NoError(t, err)
	require.NoError(t, s.Books().Create(ctx, storetest.Book("book-1", nil, "kept")))
	require.NoError(t, s.Close())

	// Re-open applies the schema again and keeps the data.
	s2, err := Open(path, nil, 0)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Books().Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
}

func TestSequenceNotReusedAfterDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := storetest.Book("book-a", nil, "a")
	require.NoError(t, s.Books().Create(ctx, a))
	require.NoError(t, s.Books().Delete(ctx, "book-a"))

	b := storetest.Book("book-b", nil, "b")
	require.NoError(t, s.Books().Create(ctx, b))
	assert.Greater(t, b.Seq, a.Seq)
}
