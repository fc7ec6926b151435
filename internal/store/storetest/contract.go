// Package storetest holds the behavior every store.Catalog backend must show.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	domainerrors "github.com/bookstoreapp/bookstore-server/internal/errors"
	"github.com/bookstoreapp/bookstore-server/internal/store"
)

// Factory opens a fresh, empty catalog for one subtest.
type Factory func(t *testing.T) store.Catalog

// Ptr returns a pointer to s.
func Ptr(s string) *string { return &s }

// Book builds a book with id and author.
func Book(id string, author *string, title string) *domain.Book {
	b := &domain.Book{Title: title, Author: author, ISBN: "isbn-" + title}
	b.ID = id
	b.InitTimestamps()
	return b
}

// Magazine builds a magazine with id and author.
func Magazine(id string, author *string, issue string) *domain.Magazine {
	m := &domain.Magazine{Title: "Issue " + issue, Author: author, Issue: issue}
	m.ID = id
	m.InitTimestamps()
	return m
}

// Run exercises a backend against the Catalog contract.
func Run(t *testing.T, open Factory) {
	t.Run("CreateGetRoundTrip", func(t *testing.T) {
		c := open(t)
		ctx := context.Background()

		date := time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)
		b := Book("book-1", Ptr("Frank Herbert"), "Dune")
		b.PublishDate = &date
		require.NoError(t, c.Books().Create(ctx, b))
		assert.Equal(t, uint64(1), b.Seq)

		got, err := c.Books().Get(ctx, "book-1")
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Title)
		require.NotNil(t, got.Author)
		assert.Equal(t, "Frank Herbert", *got.Author)
		require.NotNil(t, got.PublishDate)
		assert.True(t, date.Equal(*got.PublishDate))
		assert.Equal(t, b.Seq, got.Seq)
	})

	t.Run("AbsentAndEmptyAuthorStayDistinct", func(t *testing.T) {
		c := open(t)
		ctx := context.Background()

		require.NoError(t, c.Magazines().Create(ctx, Magazine("mag-1", nil, "1")))
		require.NoError(t, c.Magazines().Create(ctx, Magazine("mag-2", Ptr(""), "2")))

		m1, err := c.Magazines().Get(ctx, "mag-1")
		require.NoError(t, err)
		assert.Nil(t, m1.Author)
		assert.Nil(t, m1.PublishDate)

		m2, err := c.Magazines().Get(ctx, "mag-2")
		require.NoError(t, err)
		require.NotNil(t, m2.Author)
		assert.Equal(t, "", *m2.Author)
		assert.Equal(t, "2", m2.Issue)
	})

	t.Run("CreateDuplicateFails", func(t *testing.T) {
		c := open(t)
		ctx := context.Background()

		require.NoError(t, c.Books().Create(ctx, Book("book-1", nil, "a")))
		err := c.Books().Create(ctx, Book("book-1", nil, "b"))
		require.Error(t, err)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrStorageFailure))
	})

	t.Run("ListInStoreOrder", func(t *testing.T) {
		c := open(t)
		ctx := context.Background()

		// ids sort opposite to insertion order
		for i := range 12 {
			id := fmt.Sprintf("book-%02d", 20-i)
			require.NoError(t, c.Books().Create(ctx, Book(id, nil, fmt.Sprintf("t%02d", i))))
		}

		list, err := c.Books().List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 12)
		for i, b := range list {
			assert.Equal(t, fmt.Sprintf("t%02d", i), b.Title)
			if i > 0 {
				assert.Greater(t, b.Seq, list[i-1].Seq)
			}
		}
	})

	t.Run("ListEmpty", func(t *testing.T) {
		c := open(t)

		list, err := c.Magazines().List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("CollectionsAreSeparate", func(t *testing.T) {
		c := open(t)
		ctx := context.Background()

		require.NoError(t, c.Books().Create(ctx, Book("x-1", nil, "book")))

		_, err := c.Magazines().Get(ctx, "x-1")
		assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
	})

	t.Run("ReplaceKeepsIdentityAndOrder", func(t *testing.T) {
		c := open(t)
		ctx := context.Background()

		first := Book("book-a", Ptr("A"), "first")
		require.NoError(t, c.Books().Create(ctx, first))
		require.NoError(t, c.Books().Create(ctx, Book("book-b", Ptr("B"), "second")))

		repl := &domain.Book{Title: "renamed", ISBN: "999"}
		repl.UpdatedAt = time.Now()
		require.NoError(t, c.Books().Replace(ctx, "book-a", repl))
		assert.Equal(t, "book-a", repl.ID)
		assert.Equal(t, first.Seq, repl.Seq)

		got, err := c.Books().Get(ctx, "book-a")
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		assert.Nil(t, got.Author, "replace is a full document replace")
		assert.True(t, first.CreatedAt.Equal(got.CreatedAt))

		list, err := c.Books().List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "book-a", list[0].ID)
	})

	t.Run("ConcurrentReplaceIsLastWriteWins", func(t *testing.T) {
		c := open(t)
		ctx := context.Background()

		orig := Book("book-1", Ptr("A"), "original")
		require.NoError(t, c.Books().Create(ctx, orig))

		const writers = 32
		titles := make(map[string]bool, writers)
		errs := make([]error, writers)
		var wg sync.WaitGroup
		for i := range writers {
			title := fmt.Sprintf("title-%02d", i)
			titles[title] = true
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = c.Books().Replace(ctx, "book-1", &domain.Book{Title: title})
			}()
		}
		wg.Wait()

		for i, err := range errs {
			assert.NoError(t, err, "writer %d", i)
		}

		got, err := c.Books().Get(ctx, "book-1")
		require.NoError(t, err)
		assert.True(t, titles[got.Title], "stored title %q was never written", got.Title)
		assert.Equal(t, orig.Seq, got.Seq)
		assert.True(t, orig.CreatedAt.Equal(got.CreatedAt))

		list, err := c.Books().List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("ReplaceMissingIsNotFound", func(t *testing.T) {
		c := open(t)

		err := c.Magazines().Replace(context.Background(), "mag-missing", &domain.Magazine{Title: "x"})
		require.Error(t, err)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
		assert.False(t, domainerrors.Is(err, domainerrors.ErrStorageFailure))
	})

	t.Run("GetMissingIsNotFound", func(t *testing.T) {
		c := open(t)

		_, err := c.Books().Get(context.Background(), "book-missing")
		assert.Equal(t, domainerrors.CodeNotFound, domainerrors.CodeOf(err))
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		c := open(t)
		ctx := context.Background()

		require.NoError(t, c.Books().Create(ctx, Book("book-1", nil, "a")))
		require.NoError(t, c.Books().Delete(ctx, "book-1"))
		require.NoError(t, c.Books().Delete(ctx, "book-1"))
		require.NoError(t, c.Books().Delete(ctx, "never-existed"))

		_, err := c.Books().Get(ctx, "book-1")
		assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
	})

	t.Run("CanceledContextIsStorageFailure", func(t *testing.T) {
		c := open(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Books().List(ctx)
		require.Error(t, err)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrStorageFailure))
	})

	t.Run("Ping", func(t *testing.T) {
		c := open(t)
		assert.NoError(t, c.Ping(context.Background()))
	})
}
