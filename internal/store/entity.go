package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	domainerrors "github.com/bookstoreapp/bookstore-server/internal/errors"
)

// Entity is a Badger-backed Collection of JSON documents of type T.
type Entity[T any] struct {
	store  *Store
	name   string
	prefix string
	record func(*T) *domain.Record
	seq    *badger.Sequence
}

var _ Collection[domain.Book] = (*Entity[domain.Book])(nil)

// NewEntity creates a collection under prefix. The record accessor exposes
// the shared fields the store maintains (id, seq, timestamps).
func NewEntity[T any](s *Store, name, prefix string, record func(*T) *domain.Record) (*Entity[T], error) {
	seq, err := s.db.GetSequence(sequenceKey(prefix), 100)
	if err != nil {
		return nil, fmt.Errorf("lease %s sequence: %w", name, err)
	}
	return &Entity[T]{
		store:  s,
		name:   name,
		prefix: prefix,
		record: record,
		seq:    seq,
	}, nil
}

// Create stores a new record under its ID and assigns the next sequence.
// Returns ErrAlreadyExists if a record with this ID exists.
func (e *Entity[T]) Create(ctx context.Context, entity *T) error {
	ctx, cancel := e.store.bound(ctx)
	defer cancel()
	op := "create " + e.name

	rec := e.record(entity)
	if rec.ID == "" {
		return Fail(op, ErrMissingID)
	}
	if err := ctx.Err(); err != nil {
		return Fail(op, err)
	}

	next, err := e.seq.Next()
	if err != nil {
		return Fail(op, fmt.Errorf("next sequence: %w", err))
	}
	// badger sequences start at zero; store order starts at one
	rec.Seq = next + 1

	data, err := json.Marshal(entity)
	if err != nil {
		return Fail(op, fmt.Errorf("marshal: %w", err))
	}

	key := buildKey(e.prefix, rec.ID)
	defer releaseKey(key)

	err = e.store.update(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check existing key: %w", err)
		}
		return txn.Set(key, data)
	})
	return Fail(op, err)
}

// Get retrieves a record by ID.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	ctx, cancel := e.store.bound(ctx)
	defer cancel()
	op := "get " + e.name

	if err := ctx.Err(); err != nil {
		return nil, Fail(op, err)
	}

	key := buildKey(e.prefix, id)
	defer releaseKey(key)

	var entity T
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return e.notFound(id)
		}
		if err != nil {
			return fmt.Errorf("get key: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		})
	})
	if err != nil {
		return nil, Fail(op, err)
	}
	return &entity, nil
}

// Replace overwrites the whole record stored under id. The stored ID,
// sequence and creation time are kept.
func (e *Entity[T]) Replace(ctx context.Context, id string, entity *T) error {
	ctx, cancel := e.store.bound(ctx)
	defer cancel()
	op := "replace " + e.name

	if err := ctx.Err(); err != nil {
		return Fail(op, err)
	}

	key := buildKey(e.prefix, id)
	defer releaseKey(key)

	err := e.store.update(ctx, func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return e.notFound(id)
		}
		if err != nil {
			return fmt.Errorf("get existing key: %w", err)
		}

		var prev T
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &prev)
		}); err != nil {
			return fmt.Errorf("unmarshal existing: %w", err)
		}
		e.record(entity).Carry(e.record(&prev))

		data, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		return txn.Set(key, data)
	})
	return Fail(op, err)
}

// Delete removes a record by ID. Deleting a missing ID succeeds.
func (e *Entity[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := e.store.bound(ctx)
	defer cancel()
	op := "delete " + e.name

	if err := ctx.Err(); err != nil {
		return Fail(op, err)
	}

	key := buildKey(e.prefix, id)
	defer releaseKey(key)

	err := e.store.update(ctx, func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	return Fail(op, err)
}

// List returns every record in ascending sequence order.
func (e *Entity[T]) List(ctx context.Context) ([]*T, error) {
	ctx, cancel := e.store.bound(ctx)
	defer cancel()
	op := "list " + e.name

	out := make([]*T, 0)
	err := e.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(e.prefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var entity T
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entity)
			}); err != nil {
				return fmt.Errorf("unmarshal %s: %w", it.Item().Key(), err)
			}
			out = append(out, &entity)
		}
		return nil
	})
	if err != nil {
		return nil, Fail(op, err)
	}

	slices.SortFunc(out, func(a, b *T) int {
		return cmp.Compare(e.record(a).Seq, e.record(b).Seq)
	})
	return out, nil
}

// Count returns the number of stored records without decoding them.
func (e *Entity[T]) Count(ctx context.Context) (int, error) {
	ctx, cancel := e.store.bound(ctx)
	defer cancel()

	n := 0
	err := e.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(e.prefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, Fail("count "+e.name, err)
	}
	return n, nil
}

func (e *Entity[T]) notFound(id string) error {
	return domainerrors.NotFoundf("%s %s not found", e.name, id)
}

func (e *Entity[T]) release() error {
	return e.seq.Release()
}
