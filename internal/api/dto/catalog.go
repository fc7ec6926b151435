package dto

import (
	"time"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	"github.com/bookstoreapp/bookstore-server/internal/service"
)

// BookRequest is the body for creating or replacing a book. Every field
// is optional; a replace stores exactly what is sent.
type BookRequest struct {
	Title       string  `json:"title,omitempty" doc:"Book title"`
	Author      *string `json:"author,omitempty" doc:"Author name; omit or send null for no author"`
	ISBN        string  `json:"isbn,omitempty" doc:"ISBN"`
	PublishDate string  `json:"publish_date,omitempty" doc:"Publication date, YYYY-MM-DD"`
}

// Input converts the request to service input.
func (r BookRequest) Input() service.BookInput {
	return service.BookInput{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		PublishDate: r.PublishDate,
	}
}

// MagazineRequest is the body for creating or replacing a magazine.
type MagazineRequest struct {
	Title       string  `json:"title,omitempty" doc:"Magazine title"`
	Author      *string `json:"author,omitempty" doc:"Author or publisher; omit or send null for no author"`
	ISBN        string  `json:"isbn,omitempty" doc:"ISBN or ISSN"`
	PublishDate string  `json:"publish_date,omitempty" doc:"Publication date, YYYY-MM-DD"`
	Issue       string  `json:"issue,omitempty" doc:"Issue label"`
}

// Input converts the request to service input.
func (r MagazineRequest) Input() service.MagazineInput {
	return service.MagazineInput{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		PublishDate: r.PublishDate,
		Issue:       r.Issue,
	}
}

// Book is a stored book.
type Book struct {
	ID          string    `json:"id" doc:"Record identifier"`
	Title       string    `json:"title" doc:"Book title"`
	Author      *string   `json:"author" doc:"Author name, null when absent"`
	ISBN        string    `json:"isbn" doc:"ISBN"`
	PublishDate string    `json:"publish_date,omitempty" doc:"Publication date, YYYY-MM-DD"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last replace time"`
}

// Magazine is a stored magazine.
type Magazine struct {
	ID          string    `json:"id" doc:"Record identifier"`
	Title       string    `json:"title" doc:"Magazine title"`
	Author      *string   `json:"author" doc:"Author name, null when absent"`
	ISBN        string    `json:"isbn" doc:"ISBN or ISSN"`
	PublishDate string    `json:"publish_date,omitempty" doc:"Publication date, YYYY-MM-DD"`
	Issue       string    `json:"issue" doc:"Issue label"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last replace time"`
}

// BookFrom converts a domain book.
func BookFrom(b *domain.Book) Book {
	return Book{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		PublishDate: domain.FormatDate(b.PublishDate),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// MagazineFrom converts a domain magazine.
func MagazineFrom(m *domain.Magazine) Magazine {
	return Magazine{
		ID:          m.ID,
		Title:       m.Title,
		Author:      m.Author,
		ISBN:        m.ISBN,
		PublishDate: domain.FormatDate(m.PublishDate),
		Issue:       m.Issue,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Books converts a list of domain books.
func Books(books []*domain.Book) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		out = append(out, BookFrom(b))
	}
	return out
}

// Magazines converts a list of domain magazines.
func Magazines(mags []*domain.Magazine) []Magazine {
	out := make([]Magazine, 0, len(mags))
	for _, m := range mags {
		out = append(out, MagazineFrom(m))
	}
	return out
}

// AuthorGroup is one author's records within a single collection.
type AuthorGroup struct {
	Author *string               `json:"author" doc:"Author name, null for records without one"`
	Count  int                   `json:"count" doc:"Number of records by this author"`
	Items  []domain.BriefSummary `json:"items" doc:"Title and ISBN of each record"`
}

// AuthorGroups converts brief author groups.
func AuthorGroups(groups []domain.AuthorGroup[domain.BriefSummary]) []AuthorGroup {
	out := make([]AuthorGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, AuthorGroup{Author: g.Author.Ptr(), Count: g.ItemCount, Items: g.Items})
	}
	return out
}

// BookSummary is a book inside a combined author record.
type BookSummary struct {
	Title       string `json:"title"`
	ISBN        string `json:"isbn"`
	PublishDate string `json:"publish_date,omitempty"`
}

// MagazineSummary is a magazine inside a combined author record.
type MagazineSummary struct {
	Title       string `json:"title"`
	Issue       string `json:"issue"`
	PublishDate string `json:"publish_date,omitempty"`
}

// CombinedAuthor is one author's books and magazines together.
type CombinedAuthor struct {
	Author        *string           `json:"author" doc:"Author name, null for records without one"`
	BookCount     int               `json:"book_count"`
	Books         []BookSummary     `json:"books"`
	MagazineCount int               `json:"magazine_count"`
	Magazines     []MagazineSummary `json:"magazines"`
}

// CombinedAuthors converts merged author records, keeping their order.
func CombinedAuthors(records []domain.CombinedAuthorRecord) []CombinedAuthor {
	out := make([]CombinedAuthor, 0, len(records))
	for _, r := range records {
		c := CombinedAuthor{
			Author:        r.Author.Ptr(),
			BookCount:     r.BookCount,
			Books:         make([]BookSummary, 0, len(r.Books)),
			MagazineCount: r.MagazineCount,
			Magazines:     make([]MagazineSummary, 0, len(r.Magazines)),
		}
		for _, b := range r.Books {
			c.Books = append(c.Books, BookSummary{Title: b.Title, ISBN: b.ISBN, PublishDate: domain.FormatDate(b.PublishDate)})
		}
		for _, m := range r.Magazines {
			c.Magazines = append(c.Magazines, MagazineSummary{Title: m.Title, Issue: m.Issue, PublishDate: domain.FormatDate(m.PublishDate)})
		}
		out = append(out, c)
	}
	return out
}
