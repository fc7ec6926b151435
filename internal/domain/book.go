// Package domain contains the catalog entities and the derived per-author views.
package domain

import "time"

// DateLayout is the wire format of publish dates in forms and JSON.
const DateLayout = "2006-01-02"

// Kind names a catalog collection.
type Kind string

// Catalog kinds.
const (
	KindBook     Kind = "book"
	KindMagazine Kind = "magazine"
)

// Plural returns the collection name used in routes and templates.
func (k Kind) Plural() string {
	switch k {
	case KindBook:
		return "books"
	case KindMagazine:
		return "magazines"
	default:
		return string(k) + "s"
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindBook || k == KindMagazine
}

// Book is a catalog book.
type Book struct {
	Record
	Title       string     `json:"title" msgpack:"title"`
	Author      *string    `json:"author,omitempty" msgpack:"author"`
	ISBN        string     `json:"isbn" msgpack:"isbn"`
	PublishDate *time.Time `json:"publish_date,omitempty" msgpack:"publish_date"`
}

// AuthorKey returns the grouping key for the book's author.
func (b *Book) AuthorKey() AuthorKey {
	return AuthorKeyOf(b.Author)
}

// AuthorName returns the author for display, or "" when absent.
func (b *Book) AuthorName() string {
	return b.AuthorKey().String()
}

// Magazine is a catalog magazine. It carries the book fields plus an issue.
type Magazine struct {
	Record
	Title       string     `json:"title" msgpack:"title"`
	Author      *string    `json:"author,omitempty" msgpack:"author"`
	ISBN        string     `json:"isbn" msgpack:"isbn"`
	PublishDate *time.Time `json:"publish_date,omitempty" msgpack:"publish_date"`
	Issue       string     `json:"issue" msgpack:"issue"`
}

// AuthorKey returns the grouping key for the magazine's author.
func (m *Magazine) AuthorKey() AuthorKey {
	return AuthorKeyOf(m.Author)
}

// AuthorName returns the author for display, or "" when absent.
func (m *Magazine) AuthorName() string {
	return m.AuthorKey().String()
}

// FormatDate renders an optional publish date in DateLayout.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate parses an optional publish date. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
