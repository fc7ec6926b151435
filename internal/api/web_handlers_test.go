package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	"github.com/bookstoreapp/bookstore-server/internal/logger"
	"github.com/bookstoreapp/bookstore-server/internal/store/storetest"
)

func TestPages_AddEditDeleteBook(t *testing.T) {
	ts := setupTestServer(t, Options{})
	ctx := context.Background()

	w := ts.postForm(t, "/books/add", url.Values{
		"title":        {"Kindred"},
		"author":       {"Octavia E. Butler"},
		"isbn":         {"9780807083697"},
		"publish_date": {"1979-06-01"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/books", w.Header().Get("Location"))

	books, err := ts.catalog.Books().List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	book := books[0]

	w = ts.do(t, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kindred")
	assert.Contains(t, w.Body.String(), "/books/edit/"+book.ID)

	w = ts.do(t, http.MethodGet, "/books/edit/"+book.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Octavia E. Butler"`)

	// a blank author field clears the author
	w = ts.postForm(t, "/books/edit/"+book.ID, url.Values{"title": {"Kindred"}, "author": {"  "}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	got, err := ts.catalog.Books().Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Unknown(), got.AuthorKey())
	assert.Nil(t, got.PublishDate)

	w = ts.postForm(t, "/books/delete/"+book.ID, url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	w = ts.postForm(t, "/books/delete/"+book.ID, url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	books, err = ts.catalog.Books().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestPages_MagazineRoutes(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.postForm(t, "/magazines/add", url.Values{"title": {"Analog"}, "issue": {"42"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/magazines", w.Header().Get("Location"))

	w = ts.do(t, http.MethodGet, "/magazines", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Analog")
	assert.Contains(t, w.Body.String(), "Unknown author")

	w = ts.do(t, http.MethodGet, "/magazines/aggregate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown author")
}

func TestPages_NotFoundAndValidation(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.do(t, http.MethodGet, "/books/edit/book-nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")

	w = ts.postForm(t, "/magazines/edit/mag-nope", url.Values{"title": {"x"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.postForm(t, "/books/add", url.Values{"title": {"x"}, "publish_date": {"someday"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPages_HomeAndAggregate(t *testing.T) {
	ts := setupTestServer(t, Options{})
	ctx := context.Background()

	require.NoError(t, ts.catalog.Books().Create(ctx, storetest.Book("b1", storetest.Ptr("Ann"), "First")))
	require.NoError(t, ts.catalog.Magazines().Create(ctx, storetest.Magazine("m1", storetest.Ptr("Bob"), "9")))

	w := ts.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "First")
	assert.Contains(t, w.Body.String(), "Issue 9")

	w = ts.do(t, http.MethodGet, "/aggregate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Ann")
	assert.Contains(t, body, "Bob")
	assert.Less(t, strings.Index(body, "Ann"), strings.Index(body, "Bob"))

	w = ts.do(t, http.MethodGet, "/books/aggregate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "isbn-First")
}

func TestPages_StorageFailureShowsGenericError(t *testing.T) {
	ts := setupTestServer(t, Options{})
	require.NoError(t, ts.catalog.Close())

	w := ts.do(t, http.MethodGet, "/books", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to fetch books")
	assert.Contains(t, w.Body.String(), "Reference "+w.Header().Get(RequestIDHeader))

	w = ts.do(t, http.MethodGet, "/aggregate", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to fetch aggregated data")

	w = ts.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to fetch data")
}

func TestPages_Search(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.postForm(t, "/books/add", url.Values{"title": {"Hyperion"}, "author": {"Dan Simmons"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = ts.do(t, http.MethodGet, "/search?q=simmons", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hyperion")

	w = ts.do(t, http.MethodGet, "/search?q=x&kind=comic", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPages_ReloadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	entries, err := os.ReadDir("templates")
	require.NoError(t, err)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join("templates", e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644))
	}

	pages, err := NewPages(dir, logger.Discard().Logger)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "error.html"), []byte(`custom {{.Message}}`), 0o644))
	require.NoError(t, pages.Reload())

	w := httptest.NewRecorder()
	require.NoError(t, pages.Render(w, http.StatusTeapot, "error.html", errorPage{Message: "hi"}))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "custom hi", w.Body.String())

	// a broken template keeps the previous set
	require.NoError(t, os.WriteFile(filepath.Join(dir, "error.html"), []byte(`{{.Message`), 0o644))
	assert.Error(t, pages.Reload())
	w = httptest.NewRecorder()
	require.NoError(t, pages.Render(w, http.StatusOK, "error.html", errorPage{Message: "still"}))
	assert.Equal(t, "custom still", w.Body.String())
}
