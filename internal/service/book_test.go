package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	domainerrors "github.com/bookstoreapp/bookstore-server/internal/errors"
	"github.com/bookstoreapp/bookstore-server/internal/id"
	"github.com/bookstoreapp/bookstore-server/internal/search"
	"github.com/bookstoreapp/bookstore-server/internal/sse"
)

func TestBookService_CreateAssignsIDAndEmits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.books.Create(ctx, BookInput{
		Title:       "Dune",
		Author:      ptr("Frank Herbert"),
		ISBN:        "9780441013593",
		PublishDate: "1965-08-01",
	})
	require.NoError(t, err)

	assert.True(t, id.HasPrefix(book.ID, id.PrefixBook))
	assert.NotZero(t, book.Seq)
	assert.Equal(t, "1965-08-01", domain.FormatDate(book.PublishDate))
	assert.Equal(t, []sse.EventType{sse.EventBookCreated}, f.events.types())

	got, err := f.books.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, domain.Known("Frank Herbert"), got.AuthorKey())
}

func TestBookService_CreateWithoutAuthor(t *testing.T) {
	f := newFixture(t)

	book, err := f.books.Create(context.Background(), BookInput{Title: "Anonymous"})
	require.NoError(t, err)
	assert.Nil(t, book.Author)
	assert.Equal(t, domain.Unknown(), book.AuthorKey())
}

func TestBookService_CreateRejectsBadDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.books.Create(context.Background(), BookInput{Title: "X", PublishDate: "next tuesday"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Empty(t, f.events.types())

	books, err := f.books.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookService_AcceptsFieldsOfAnyLength(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	long := strings.Repeat("x", 5000)
	book, err := f.books.Create(ctx, BookInput{Title: long, Author: ptr(long), ISBN: long})
	require.NoError(t, err)

	got, err := f.books.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, long, got.Title)
	assert.Equal(t, long, got.ISBN)
}

func TestBookService_ReplaceIsFullReplace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.books.Create(ctx, BookInput{Title: "Old", Author: ptr("A"), ISBN: "1", PublishDate: "2001-01-01"})
	require.NoError(t, err)

	replaced, err := f.books.Replace(ctx, book.ID, BookInput{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, book.ID, replaced.ID)

	got, err := f.books.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Nil(t, got.Author)
	assert.Empty(t, got.ISBN)
	assert.Nil(t, got.PublishDate)
	assert.Equal(t, book.Seq, got.Seq)
}

func TestBookService_ReplaceMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.books.Replace(context.Background(), "book-missing", BookInput{Title: "X"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.Empty(t, f.events.types())
}

func TestBookService_DeleteIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.books.Create(ctx, BookInput{Title: "Gone"})
	require.NoError(t, err)

	require.NoError(t, f.books.Delete(ctx, book.ID))
	require.NoError(t, f.books.Delete(ctx, book.ID))

	_, err = f.books.Get(ctx, book.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestBookService_WritesReachSearchIndex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.books.Create(ctx, BookInput{Title: "Neuromancer", Author: ptr("William Gibson")})
	require.NoError(t, err)

	res, err := f.search.Search(ctx, search.Params{Query: "gibson"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, book.ID, res.Hits[0].ID)

	require.NoError(t, f.books.Delete(ctx, book.ID))
	res, err = f.search.Search(ctx, search.Params{Query: "gibson"})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
}

func TestBookService_GroupByAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, in := range []BookInput{
		{Title: "B1", Author: ptr("Ann"), ISBN: "1"},
		{Title: "B2", Author: ptr("Bob"), ISBN: "2"},
		{Title: "B3", Author: ptr("Ann"), ISBN: "3"},
	} {
		_, err := f.books.Create(ctx, in)
		require.NoError(t, err)
	}

	groups, err := f.books.GroupByAuthor(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, domain.Known("Ann"), groups[0].Author)
	assert.Equal(t, 2, groups[0].ItemCount)
	assert.Equal(t, []domain.BriefSummary{{Title: "B1", ISBN: "1"}, {Title: "B3", ISBN: "3"}}, groups[0].Items)
}
