package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	domainerrors "github.com/bookstoreapp/bookstore-server/internal/errors"
	"github.com/bookstoreapp/bookstore-server/internal/store"
)

// ErrInvalidSnapshot is returned for input that is not a readable snapshot.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Stats counts what an export wrote or an import applied.
type Stats struct {
	Books     int
	Magazines int
	Replaced  int
}

// Export writes every book and magazine to w in store order.
func Export(ctx context.Context, catalog store.Catalog, w io.Writer) (Stats, error) {
	books, err := catalog.Books().List(ctx)
	if err != nil {
		return Stats{}, err
	}
	magazines, err := catalog.Magazines().List(ctx)
	if err != nil {
		return Stats{}, err
	}

	doc := Document{
		CreatedAt: time.Now().UTC(),
		Books:     books,
		Magazines: magazines,
	}
	if err := Write(w, &doc); err != nil {
		return Stats{}, err
	}
	return Stats{Books: len(books), Magazines: len(magazines)}, nil
}

// Write encodes doc to w.
func Write(w io.Writer, doc *Document) error {
	if err := WriteHeader(w); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	zw := lz4.NewWriter(w)
	if err := msgpack.NewEncoder(zw).Encode(doc); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush compressed stream: %w", err)
	}
	return nil
}

// Read decodes a snapshot from r.
func Read(r io.Reader) (*Document, error) {
	if _, err := ReadHeader(r); err != nil {
		return nil, err
	}

	var doc Document
	if err := msgpack.NewDecoder(lz4.NewReader(r)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrInvalidSnapshot, err)
	}
	return &doc, nil
}

// Import loads a snapshot into catalog, keeping record ids. A record whose
// id already exists is replaced; the rest are appended in snapshot order.
func Import(ctx context.Context, catalog store.Catalog, r io.Reader, logger *slog.Logger) (Stats, error) {
	doc, err := Read(r)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, b := range doc.Books {
		replaced, err := upsert(ctx, catalog.Books(), b, b.ID)
		if err != nil {
			return stats, fmt.Errorf("import book %s: %w", b.ID, err)
		}
		stats.Books++
		if replaced {
			stats.Replaced++
		}
	}
	for _, m := range doc.Magazines {
		replaced, err := upsert(ctx, catalog.Magazines(), m, m.ID)
		if err != nil {
			return stats, fmt.Errorf("import magazine %s: %w", m.ID, err)
		}
		stats.Magazines++
		if replaced {
			stats.Replaced++
		}
	}

	logger.Info("snapshot imported",
		"books", stats.Books,
		"magazines", stats.Magazines,
		"replaced", stats.Replaced,
		"snapshot_created_at", doc.CreatedAt,
	)
	return stats, nil
}

func upsert[T any](ctx context.Context, c store.Collection[T], record *T, id string) (bool, error) {
	err := c.Replace(ctx, id, record)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return false, err
	}
	return false, c.Create(ctx, record)
}

