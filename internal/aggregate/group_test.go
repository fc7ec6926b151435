package aggregate

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
)

func ptr(s string) *string { return &s }

func book(author *string, title string) *domain.Book {
	return &domain.Book{Title: title, Author: author, ISBN: "isbn-" + title}
}

func magazine(author *string, issue string) *domain.Magazine {
	return &domain.Magazine{Title: "mag-" + issue, Author: author, Issue: issue}
}

var cmpKey = cmp.Comparer(func(a, b domain.AuthorKey) bool { return a == b })

func TestGroupByAuthor_Scenario(t *testing.T) {
	books := []*domain.Book{
		book(ptr("A"), "X"),
		book(ptr("A"), "Y"),
		book(ptr("B"), "Z"),
	}

	got := BooksByAuthor(books)

	want := []domain.AuthorGroup[domain.BookSummary]{
		{Author: domain.Known("A"), ItemCount: 2, Items: []domain.BookSummary{
			{Title: "X", ISBN: "isbn-X"},
			{Title: "Y", ISBN: "isbn-Y"},
		}},
		{Author: domain.Known("B"), ItemCount: 1, Items: []domain.BookSummary{
			{Title: "Z", ISBN: "isbn-Z"},
		}},
	}
	if diff := cmp.Diff(want, got, cmpKey); diff != "" {
		t.Errorf("BooksByAuthor mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByAuthor_LargestGroupFirst(t *testing.T) {
	books := []*domain.Book{
		book(ptr("B"), "1"),
		book(ptr("A"), "2"),
		book(ptr("C"), "3"),
		book(ptr("A"), "4"),
		book(ptr("C"), "5"),
		book(ptr("C"), "6"),
	}

	got := BooksByAuthor(books)

	require.Len(t, got, 3)
	assert.Equal(t, domain.Known("C"), got[0].Author)
	assert.Equal(t, 3, got[0].ItemCount)
	assert.Equal(t, domain.Known("A"), got[1].Author)
	assert.Equal(t, domain.Known("B"), got[2].Author)
}

func TestGroupByAuthor_Empty(t *testing.T) {
	got := BooksByAuthor(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGroupByAuthor_UnknownAuthorsShareOneGroup(t *testing.T) {
	books := []*domain.Book{
		book(nil, "one"),
		book(ptr("A"), "two"),
		book(nil, "three"),
	}

	got := BooksByAuthor(books)

	require.Len(t, got, 2)
	assert.Equal(t, domain.Unknown(), got[0].Author)
	assert.Equal(t, 2, got[0].ItemCount)
	assert.Equal(t, "one", got[0].Items[0].Title)
	assert.Equal(t, "three", got[0].Items[1].Title)
}

func TestGroupByAuthor_EmptyNameIsNotUnknown(t *testing.T) {
	got := BooksByAuthor([]*domain.Book{book(ptr(""), "a"), book(nil, "b")})

	require.Len(t, got, 2)
	authors := []domain.AuthorKey{got[0].Author, got[1].Author}
	assert.ElementsMatch(t, []domain.AuthorKey{domain.Known(""), domain.Unknown()}, authors)
}

func TestGroupByAuthor_KeepsStoreOrderWithinGroup(t *testing.T) {
	var books []*domain.Book
	for i := range 10 {
		books = append(books, book(ptr("A"), fmt.Sprintf("t%02d", i)))
	}

	got := BooksByAuthor(books)

	require.Len(t, got, 1)
	for i, item := range got[0].Items {
		assert.Equal(t, fmt.Sprintf("t%02d", i), item.Title)
	}
}

func TestBriefByAuthor(t *testing.T) {
	mags := []*domain.Magazine{magazine(ptr("A"), "1"), magazine(ptr("A"), "2")}
	mags[0].ISBN = "111"

	got := BriefByAuthor(mags, (*domain.Magazine).AuthorKey, MagazineBrief)

	require.Len(t, got, 1)
	assert.Equal(t, []domain.BriefSummary{{Title: "mag-1", ISBN: "111"}, {Title: "mag-2"}}, got[0].Items)
}

// randomBooks draws authors from a small pool so groups collide.
func randomBooks(r *rand.Rand, n int) []*domain.Book {
	pool := []*string{nil, ptr(""), ptr("A"), ptr("B"), ptr("C"), ptr("D")}
	books := make([]*domain.Book, n)
	for i := range books {
		books[i] = book(pool[r.IntN(len(pool))], fmt.Sprintf("b%d", i))
	}
	return books
}

func TestGroupByAuthor_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for run := range 200 {
		books := randomBooks(r, r.IntN(40))
		groups := BooksByAuthor(books)

		total := 0
		seen := make(map[string]domain.AuthorKey)
		for i, g := range groups {
			total += g.ItemCount
			assert.Equal(t, len(g.Items), g.ItemCount, "run %d", run)
			assert.GreaterOrEqual(t, g.ItemCount, 1, "run %d", run)
			if i > 0 {
				assert.LessOrEqual(t, g.ItemCount, groups[i-1].ItemCount, "run %d: not sorted", run)
			}
			for _, item := range g.Items {
				_, dup := seen[item.Title]
				assert.False(t, dup, "run %d: %s in two groups", run, item.Title)
				seen[item.Title] = g.Author
			}
		}
		assert.Equal(t, len(books), total, "run %d", run)

		for _, b := range books {
			key, ok := seen[b.Title]
			require.True(t, ok, "run %d: %s missing", run, b.Title)
			assert.Equal(t, b.AuthorKey(), key, "run %d", run)
		}
	}
}
