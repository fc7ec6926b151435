package domain

import "time"

// BookSummary is the part of a book kept in an author group.
type BookSummary struct {
	Title       string     `json:"title"`
	ISBN        string     `json:"isbn"`
	PublishDate *time.Time `json:"publish_date,omitempty"`
}

// MagazineSummary is the part of a magazine kept in an author group.
type MagazineSummary struct {
	Title       string     `json:"title"`
	Issue       string     `json:"issue"`
	PublishDate *time.Time `json:"publish_date,omitempty"`
}

// BriefSummary is the title and ISBN pair shown on the per-kind aggregate pages.
type BriefSummary struct {
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

// AuthorGroup is one author's items within a single collection.
// Groups are derived per request and never persisted.
type AuthorGroup[S any] struct {
	Author    AuthorKey
	ItemCount int
	Items     []S
}

// CombinedAuthorRecord joins one author's book group and magazine group.
type CombinedAuthorRecord struct {
	Author        AuthorKey
	BookCount     int
	Books         []BookSummary
	MagazineCount int
	Magazines     []MagazineSummary
}

// TotalCount is the number of books and magazines together.
func (c CombinedAuthorRecord) TotalCount() int {
	return c.BookCount + c.MagazineCount
}
