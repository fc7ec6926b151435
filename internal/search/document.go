// Package search provides full-text search over the catalog using Bleve.
// Books and magazines share one index, discriminated by kind.
package search

import (
	"github.com/bookstoreapp/bookstore-server/internal/domain"
)

// Document is the indexed form of a catalog record.
type Document struct {
	ID     string      `json:"id"`
	Kind   domain.Kind `json:"kind"`
	Title  string      `json:"title"`
	Author string      `json:"author,omitempty"`
	ISBN   string      `json:"isbn,omitempty"`
	Issue  string      `json:"issue,omitempty"`

	CreatedAt int64 `json:"created_at"` // Unix millis
}

// ToMap converts the document to a map whose keys match the index mapping.
// Bleve would otherwise use the Go field names.
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"kind":       string(d.Kind),
		"title":      d.Title,
		"created_at": d.CreatedAt,
	}
	if d.Author != "" {
		m["author"] = d.Author
	}
	if d.ISBN != "" {
		m["isbn"] = d.ISBN
	}
	if d.Issue != "" {
		m["issue"] = d.Issue
	}
	return m
}

// BookToDocument converts a book for indexing.
func BookToDocument(b *domain.Book) *Document {
	return &Document{
		ID:        b.ID,
		Kind:      domain.KindBook,
		Title:     b.Title,
		Author:    b.AuthorName(),
		ISBN:      b.ISBN,
		CreatedAt: b.CreatedAt.UnixMilli(),
	}
}

// MagazineToDocument converts a magazine for indexing.
func MagazineToDocument(m *domain.Magazine) *Document {
	return &Document{
		ID:        m.ID,
		Kind:      domain.KindMagazine,
		Title:     m.Title,
		Author:    m.AuthorName(),
		ISBN:      m.ISBN,
		Issue:     m.Issue,
		CreatedAt: m.CreatedAt.UnixMilli(),
	}
}
