package snapshot

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	"github.com/bookstoreapp/bookstore-server/internal/logger"
	"github.com/bookstoreapp/bookstore-server/internal/store"
	"github.com/bookstoreapp/bookstore-server/internal/store/storetest"
)

func newCatalog(t *testing.T) store.Catalog {
	t.Helper()
	c, err := store.New("", logger.Discard().Logger, store.InMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRoundTrip_PreservesIDsOrderAndAuthors(t *testing.T) {
	ctx := context.Background()
	src := newCatalog(t)

	require.NoError(t, src.Books().Create(ctx, storetest.Book("book-c", storetest.Ptr("Ann"), "C")))
	require.NoError(t, src.Books().Create(ctx, storetest.Book("book-a", nil, "A")))
	require.NoError(t, src.Books().Create(ctx, storetest.Book("book-b", storetest.Ptr(""), "B")))
	require.NoError(t, src.Magazines().Create(ctx, storetest.Magazine("mag-1", storetest.Ptr("Ann"), "1")))

	var buf bytes.Buffer
	stats, err := Export(ctx, src, &buf)
	require.NoError(t, err)
	assert.Equal(t, Stats{Books: 3, Magazines: 1}, stats)
	assert.Equal(t, Magic, buf.String()[:4])

	dst := newCatalog(t)
	stats, err = Import(ctx, dst, &buf, logger.Discard().Logger)
	require.NoError(t, err)
	assert.Equal(t, Stats{Books: 3, Magazines: 1}, stats)

	books, err := dst.Books().List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "book-c", books[0].ID)
	assert.Equal(t, "book-a", books[1].ID)
	assert.Equal(t, "book-b", books[2].ID)

	assert.Equal(t, domain.Known("Ann"), books[0].AuthorKey())
	assert.Equal(t, domain.Unknown(), books[1].AuthorKey())
	assert.Equal(t, domain.Known(""), books[2].AuthorKey())

	mags, err := dst.Magazines().List(ctx)
	require.NoError(t, err)
	require.Len(t, mags, 1)
	assert.Equal(t, "1", mags[0].Issue)
}

func TestImport_ReplacesExisting(t *testing.T) {
	ctx := context.Background()
	src := newCatalog(t)
	require.NoError(t, src.Books().Create(ctx, storetest.Book("book-1", nil, "Snapshot title")))

	var buf bytes.Buffer
	_, err := Export(ctx, src, &buf)
	require.NoError(t, err)

	dst := newCatalog(t)
	require.NoError(t, dst.Books().Create(ctx, storetest.Book("book-1", nil, "Local title")))

	stats, err := Import(ctx, dst, &buf, logger.Discard().Logger)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Replaced)

	got, err := dst.Books().Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, "Snapshot title", got.Title)

	books, err := dst.Books().List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestRead_RejectsGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("NOPE\x01\x00\x00\x00rest")))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf))
	buf.WriteString("not lz4")
	_, err = Read(&buf)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestRead_RejectsFutureVersion(t *testing.T) {
	data := []byte(Magic + "\x09\x00\x00\x00")
	_, err := Read(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestRead_EmptyCatalog(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	_, err := Export(ctx, newCatalog(t), &buf)
	require.NoError(t, err)

	doc, err := Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, doc.Books)
	assert.Empty(t, doc.Magazines)
	assert.False(t, doc.CreatedAt.IsZero())
}
