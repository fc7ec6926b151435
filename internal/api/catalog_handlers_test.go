package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstoreapp/bookstore-server/internal/api/dto"
	"github.com/bookstoreapp/bookstore-server/internal/search"
	"github.com/bookstoreapp/bookstore-server/internal/store/storetest"
)

func TestBooksAPI_CRUD(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.do(t, http.MethodPost, "/api/v1/books", map[string]any{
		"title":        "Dune",
		"author":       "Frank Herbert",
		"isbn":         "9780441013593",
		"publish_date": "1965-08-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.Book
	envelope(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "1965-08-01", created.PublishDate)
	require.NotNil(t, created.Author)
	assert.Equal(t, "Frank Herbert", *created.Author)

	w = ts.do(t, http.MethodGet, "/api/v1/books/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPut, "/api/v1/books/"+created.ID, map[string]any{"title": "Dune Messiah"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var replaced dto.Book
	envelope(t, w, &replaced)
	assert.Equal(t, created.ID, replaced.ID)
	assert.Nil(t, replaced.Author)
	assert.Empty(t, replaced.PublishDate)

	w = ts.do(t, http.MethodGet, "/api/v1/books", nil)
	var list dto.ListResponse[dto.Book]
	envelope(t, w, &list)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Dune Messiah", list.Items[0].Title)

	w = ts.do(t, http.MethodDelete, "/api/v1/books/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(t, http.MethodDelete, "/api/v1/books/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/books/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestBooksAPI_Errors(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.do(t, http.MethodPut, "/api/v1/books/book-missing", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))

	w = ts.do(t, http.MethodPost, "/api/v1/books", map[string]any{"title": "x", "publish_date": "yesterday"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", errorCode(t, w))
}

func TestBooksAPI_LongFieldsAreStored(t *testing.T) {
	ts := setupTestServer(t, Options{})

	long := strings.Repeat("t", 4000)
	w := ts.do(t, http.MethodPost, "/api/v1/books", map[string]any{"title": long, "isbn": long})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.Book
	envelope(t, w, &created)
	assert.Equal(t, long, created.Title)
}

func TestBooksAPI_EmptyListIsArray(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.do(t, http.MethodGet, "/api/v1/books", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestMagazinesAPI_CRUD(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.do(t, http.MethodPost, "/api/v1/magazines", map[string]any{"title": "Wired", "issue": "2024-03"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.Magazine
	envelope(t, w, &created)
	assert.Equal(t, "2024-03", created.Issue)
	assert.Nil(t, created.Author)

	w = ts.do(t, http.MethodPut, "/api/v1/magazines/"+created.ID, map[string]any{"title": "Wired", "issue": "2024-04", "author": ""})
	require.Equal(t, http.StatusOK, w.Code)
	var replaced dto.Magazine
	envelope(t, w, &replaced)
	require.NotNil(t, replaced.Author)
	assert.Empty(t, *replaced.Author)

	w = ts.do(t, http.MethodDelete, "/api/v1/magazines/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAggregateAPI(t *testing.T) {
	ts := setupTestServer(t, Options{})
	ctx := context.Background()

	require.NoError(t, ts.catalog.Books().Create(ctx, storetest.Book("b1", storetest.Ptr("A"), "One")))
	require.NoError(t, ts.catalog.Books().Create(ctx, storetest.Book("b2", storetest.Ptr("A"), "Two")))
	require.NoError(t, ts.catalog.Books().Create(ctx, storetest.Book("b3", nil, "Three")))
	require.NoError(t, ts.catalog.Magazines().Create(ctx, storetest.Magazine("m1", nil, "1")))
	require.NoError(t, ts.catalog.Magazines().Create(ctx, storetest.Magazine("m2", storetest.Ptr("C"), "2")))

	w := ts.do(t, http.MethodGet, "/api/v1/aggregate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var combined dto.ListResponse[dto.CombinedAuthor]
	envelope(t, w, &combined)
	require.Equal(t, 3, combined.Total)

	assert.Equal(t, "A", *combined.Items[0].Author)
	assert.Equal(t, 2, combined.Items[0].BookCount)
	assert.Equal(t, 0, combined.Items[0].MagazineCount)
	assert.NotNil(t, combined.Items[0].Magazines)

	assert.Nil(t, combined.Items[1].Author)
	assert.Equal(t, 1, combined.Items[1].BookCount)
	assert.Equal(t, 1, combined.Items[1].MagazineCount)

	assert.Equal(t, "C", *combined.Items[2].Author)
	assert.Equal(t, 0, combined.Items[2].BookCount)

	w = ts.do(t, http.MethodGet, "/api/v1/books/aggregate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var groups dto.ListResponse[dto.AuthorGroup]
	envelope(t, w, &groups)
	require.Equal(t, 2, groups.Total)
	assert.Equal(t, "A", *groups.Items[0].Author)
	assert.Equal(t, 2, groups.Items[0].Count)
	assert.Equal(t, "One", groups.Items[0].Items[0].Title)

	w = ts.do(t, http.MethodGet, "/api/v1/magazines/aggregate", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSearchAPI(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.do(t, http.MethodPost, "/api/v1/books", map[string]any{"title": "The Left Hand of Darkness", "author": "Ursula K. Le Guin"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = ts.do(t, http.MethodPost, "/api/v1/magazines", map[string]any{"title": "Asimov's", "author": "Dell"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/search?q=guin", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result search.Result
	envelope(t, w, &result)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "The Left Hand of Darkness", result.Hits[0].Title)

	w = ts.do(t, http.MethodGet, "/api/v1/search?kind=magazine", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope(t, w, &result)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Asimov's", result.Hits[0].Title)

	w = ts.do(t, http.MethodGet, "/api/v1/search?kind=comic", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
