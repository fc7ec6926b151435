// Package store persists catalog records.
//
// The default backend keeps JSON documents in Badger; package store/sqlite
// provides an alternative. Both satisfy Catalog.
package store

import (
	"context"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
)

// Collection is one kind of catalog record.
//
// List returns records in store order, which is ascending insertion
// sequence. Get and Replace report a missing id as NotFound; Delete is
// idempotent. Every other failure is a StorageFailure.
type Collection[T any] interface {
	Create(ctx context.Context, record *T) error
	List(ctx context.Context) ([]*T, error)
	Get(ctx context.Context, id string) (*T, error)
	Replace(ctx context.Context, id string, record *T) error
	Delete(ctx context.Context, id string) error
}

// Catalog is the scoped store handle injected into services.
type Catalog interface {
	Books() Collection[domain.Book]
	Magazines() Collection[domain.Magazine]
	Ping(ctx context.Context) error
	Close() error
}

// BookRecord returns the shared record fields of a book.
func BookRecord(b *domain.Book) *domain.Record { return &b.Record }

// MagazineRecord returns the shared record fields of a magazine.
func MagazineRecord(m *domain.Magazine) *domain.Record { return &m.Record }
