package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstoreapp/bookstore-server/internal/store"
	"github.com/bookstoreapp/bookstore-server/internal/store/storetest"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "catalog.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Catalog {
		return openTestStore(t)
	})
}

func TestStore_InMemoryContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Catalog {
		s, err := store.New("", nil, store.InMemory())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestStore_SequenceSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	s, err := store.New(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Books().Create(ctx, storetest.Book("book-old", nil, "old")))
	require.NoError(t, s.Close())

	s, err = store.New(path, nil)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Books().Create(ctx, storetest.Book("book-new", nil, "new")))

	list, err := s.Books().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "book-old", list[0].ID)
	assert.Equal(t, "book-new", list[1].ID)
}

func TestStore_CreateWithoutID(t *testing.T) {
	s := openTestStore(t)

	err := s.Books().Create(context.Background(), storetest.Book("", nil, "x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrMissingID)
}

func TestStore_Stats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Books().Create(ctx, storetest.Book("book-1", nil, "a")))
	require.NoError(t, s.Books().Create(ctx, storetest.Book("book-2", nil, "b")))
	require.NoError(t, s.Magazines().Create(ctx, storetest.Magazine("mag-1", nil, "1")))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Books)
	assert.Equal(t, 1, st.Magazines)
}

func TestStore_PingAfterClose(t *testing.T) {
	s, err := store.New("", nil, store.InMemory())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Error(t, s.Ping(context.Background()))
}
