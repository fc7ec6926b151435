package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	domainerrors "github.com/bookstoreapp/bookstore-server/internal/errors"
	"github.com/bookstoreapp/bookstore-server/internal/search"
	"github.com/bookstoreapp/bookstore-server/internal/service"
)

func (s *Server) registerPageRoutes() {
	s.router.Get("/", s.handleHomePage)
	s.router.Get("/aggregate", s.handleAggregatePage)
	s.router.Get("/search", s.handleSearchPage)

	s.router.Route("/books", func(r chi.Router) {
		r.Get("/", s.handleBooksPage)
		r.Post("/add", s.handleAddBook)
		r.Get("/edit/{id}", s.handleEditBookPage)
		r.Post("/edit/{id}", s.handleEditBook)
		r.Post("/delete/{id}", s.handleDeleteBookForm)
		r.Get("/aggregate", s.handleBooksAggregatePage)
	})

	s.router.Route("/magazines", func(r chi.Router) {
		r.Get("/", s.handleMagazinesPage)
		r.Post("/add", s.handleAddMagazine)
		r.Get("/edit/{id}", s.handleEditMagazinePage)
		r.Post("/edit/{id}", s.handleEditMagazine)
		r.Post("/delete/{id}", s.handleDeleteMagazineForm)
		r.Get("/aggregate", s.handleMagazinesAggregatePage)
	})
}

// row is one book or magazine as the list and edit pages show it.
type row struct {
	ID          string
	Title       string
	Author      *string
	ISBN        string
	PublishDate string
	Issue       string
}

func bookRow(b *domain.Book) row {
	return row{ID: b.ID, Title: b.Title, Author: b.Author, ISBN: b.ISBN, PublishDate: domain.FormatDate(b.PublishDate)}
}

func magazineRow(m *domain.Magazine) row {
	return row{ID: m.ID, Title: m.Title, Author: m.Author, ISBN: m.ISBN, PublishDate: domain.FormatDate(m.PublishDate), Issue: m.Issue}
}

type homePage struct {
	Title     string
	Books     []row
	Magazines []row
}

type indexPage struct {
	Title   string
	Kind    domain.Kind
	Records []row
}

type editPage struct {
	Title  string
	Kind   domain.Kind
	Record row
}

type kindAggregatePage struct {
	Title  string
	Kind   domain.Kind
	Groups []domain.AuthorGroup[domain.BriefSummary]
}

type aggregatePage struct {
	Title   string
	Authors []domain.CombinedAuthorRecord
}

type searchPage struct {
	Title   string
	Query   string
	Kind    domain.Kind
	Enabled bool
	Result  *search.Result
}

type errorPage struct {
	Title     string
	Status    int
	Message   string
	RequestID string
}

// render writes a page, falling back to a plain 500 when the template
// itself fails.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := s.pages.Render(w, status, name, data); err != nil {
		s.requestLogger(r.Context()).Error("failed to render page", "page", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// renderError shows the error page. NotFound and Validation errors keep
// their own status and message; everything else is a 500 with message.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := http.StatusInternalServerError
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case domainerrors.CodeNotFound, domainerrors.CodeValidation:
			status = domainErr.HTTPStatus()
			message = domainErr.Message
		}
	}
	if status >= http.StatusInternalServerError {
		s.requestLogger(r.Context()).Error(message, "error", err)
	}

	s.render(w, r, status, "error.html", errorPage{
		Title:     "Error",
		Status:    status,
		Message:   message,
		RequestID: getRequestID(r.Context()),
	})
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, kind domain.Kind) {
	http.Redirect(w, r, "/"+kind.Plural(), http.StatusSeeOther)
}

func (s *Server) handleHomePage(w http.ResponseWriter, r *http.Request) {
	home, err := s.services.Aggregate.Home(r.Context())
	if err != nil {
		s.renderError(w, r, err, "Unable to fetch data")
		return
	}

	page := homePage{Title: "Bookstore"}
	for _, b := range home.Books {
		page.Books = append(page.Books, bookRow(b))
	}
	for _, m := range home.Magazines {
		page.Magazines = append(page.Magazines, magazineRow(m))
	}
	s.render(w, r, http.StatusOK, "home.html", page)
}

func (s *Server) handleAggregatePage(w http.ResponseWriter, r *http.Request) {
	records, err := s.services.Aggregate.Combined(r.Context())
	if err != nil {
		s.renderError(w, r, err, "Unable to fetch aggregated data")
		return
	}
	s.render(w, r, http.StatusOK, "aggregate.html", aggregatePage{Title: "Authors", Authors: records})
}

func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	page := searchPage{
		Title:   "Search",
		Query:   strings.TrimSpace(r.URL.Query().Get("q")),
		Kind:    domain.Kind(r.URL.Query().Get("kind")),
		Enabled: s.services.Search.Enabled(),
	}
	if page.Kind != "" && !page.Kind.Valid() {
		s.renderError(w, r, domainerrors.Validation("unknown kind"), "")
		return
	}

	if page.Query != "" && page.Enabled {
		result, err := s.services.Search.Search(r.Context(), search.Params{Query: page.Query, Kind: page.Kind})
		if err != nil {
			s.renderError(w, r, err, "Unable to search")
			return
		}
		page.Result = result
	}
	s.render(w, r, http.StatusOK, "search.html", page)
}

// formAuthor treats a blank author field as no author.
func formAuthor(r *http.Request) *string {
	author := strings.TrimSpace(r.PostFormValue("author"))
	if author == "" {
		return nil
	}
	return &author
}

func bookForm(r *http.Request) service.BookInput {
	return service.BookInput{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Author:      formAuthor(r),
		ISBN:        strings.TrimSpace(r.PostFormValue("isbn")),
		PublishDate: strings.TrimSpace(r.PostFormValue("publish_date")),
	}
}

func magazineForm(r *http.Request) service.MagazineInput {
	return service.MagazineInput{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Author:      formAuthor(r),
		ISBN:        strings.TrimSpace(r.PostFormValue("isbn")),
		PublishDate: strings.TrimSpace(r.PostFormValue("publish_date")),
		Issue:       strings.TrimSpace(r.PostFormValue("issue")),
	}
}

// Books

func (s *Server) handleBooksPage(w http.ResponseWriter, r *http.Request) {
	books, err := s.services.Book.List(r.Context())
	if err != nil {
		s.renderError(w, r, err, "Unable to fetch books")
		return
	}

	page := indexPage{Title: "Books", Kind: domain.KindBook}
	for _, b := range books {
		page.Records = append(page.Records, bookRow(b))
	}
	s.render(w, r, http.StatusOK, "index.html", page)
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	if _, err := s.services.Book.Create(r.Context(), bookForm(r)); err != nil {
		s.renderError(w, r, err, "Unable to add book")
		return
	}
	s.redirect(w, r, domain.KindBook)
}

func (s *Server) handleEditBookPage(w http.ResponseWriter, r *http.Request) {
	book, err := s.services.Book.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, r, err, "Unable to fetch book")
		return
	}
	s.render(w, r, http.StatusOK, "edit.html", editPage{Title: "Edit book", Kind: domain.KindBook, Record: bookRow(book)})
}

func (s *Server) handleEditBook(w http.ResponseWriter, r *http.Request) {
	if _, err := s.services.Book.Replace(r.Context(), chi.URLParam(r, "id"), bookForm(r)); err != nil {
		s.renderError(w, r, err, "Unable to update book")
		return
	}
	s.redirect(w, r, domain.KindBook)
}

func (s *Server) handleDeleteBookForm(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Book.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.renderError(w, r, err, "Unable to delete book")
		return
	}
	s.redirect(w, r, domain.KindBook)
}

func (s *Server) handleBooksAggregatePage(w http.ResponseWriter, r *http.Request) {
	groups, err := s.services.Book.GroupByAuthor(r.Context())
	if err != nil {
		s.renderError(w, r, err, "Unable to fetch aggregated data")
		return
	}
	s.render(w, r, http.StatusOK, "kind_aggregate.html", kindAggregatePage{Title: "Books by author", Kind: domain.KindBook, Groups: groups})
}

// Magazines

func (s *Server) handleMagazinesPage(w http.ResponseWriter, r *http.Request) {
	magazines, err := s.services.Magazine.List(r.Context())
	if err != nil {
		s.renderError(w, r, err, "Unable to fetch magazines")
		return
	}

	page := indexPage{Title: "Magazines", Kind: domain.KindMagazine}
	for _, m := range magazines {
		page.Records = append(page.Records, magazineRow(m))
	}
	s.render(w, r, http.StatusOK, "index.html", page)
}

func (s *Server) handleAddMagazine(w http.ResponseWriter, r *http.Request) {
	if _, err := s.services.Magazine.Create(r.Context(), magazineForm(r)); err != nil {
		s.renderError(w, r, err, "Unable to add magazine")
		return
	}
	s.redirect(w, r, domain.KindMagazine)
}

func (s *Server) handleEditMagazinePage(w http.ResponseWriter, r *http.Request) {
	magazine, err := s.services.Magazine.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, r, err, "Unable to fetch magazine")
		return
	}
	s.render(w, r, http.StatusOK, "edit.html", editPage{Title: "Edit magazine", Kind: domain.KindMagazine, Record: magazineRow(magazine)})
}

func (s *Server) handleEditMagazine(w http.ResponseWriter, r *http.Request) {
	if _, err := s.services.Magazine.Replace(r.Context(), chi.URLParam(r, "id"), magazineForm(r)); err != nil {
		s.renderError(w, r, err, "Unable to update magazine")
		return
	}
	s.redirect(w, r, domain.KindMagazine)
}

func (s *Server) handleDeleteMagazineForm(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Magazine.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.renderError(w, r, err, "Unable to delete magazine")
		return
	}
	s.redirect(w, r, domain.KindMagazine)
}

func (s *Server) handleMagazinesAggregatePage(w http.ResponseWriter, r *http.Request) {
	groups, err := s.services.Magazine.GroupByAuthor(r.Context())
	if err != nil {
		s.renderError(w, r, err, "Unable to fetch aggregated data")
		return
	}
	s.render(w, r, http.StatusOK, "kind_aggregate.html", kindAggregatePage{Title: "Magazines by author", Kind: domain.KindMagazine, Groups: groups})
}
