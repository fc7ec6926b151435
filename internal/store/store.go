package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
)

// DefaultTimeout bounds a store call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Store wraps a Badger database holding the catalog.
type Store struct {
	db      *badger.DB
	logger  *slog.Logger
	timeout time.Duration

	books     *Entity[domain.Book]
	magazines *Entity[domain.Magazine]
}

var _ Catalog = (*Store)(nil)

// Option configures a Store.
type Option func(*options)

type options struct {
	timeout  time.Duration
	inMemory bool
}

// WithTimeout bounds every store call by d.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// InMemory keeps the database in memory. Tests use it.
func InMemory() Option {
	return func(o *options) { o.inMemory = true }
}

// New opens (or creates) the Badger database at path.
func New(path string, logger *slog.Logger, opts ...Option) (*Store, error) {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	bopts := badger.DefaultOptions(path)
	if o.inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil            // Badger's internal logging is too chatty
	bopts.SyncWrites = true       // fsync every write so a crash cannot lose an acknowledged save
	bopts.CompactL0OnClose = true // faster next startup

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{db: db, logger: logger, timeout: o.timeout}

	if s.books, err = NewEntity(s, "books", bookPrefix, BookRecord); err != nil {
		_ = db.Close()
		return nil, err
	}
	if s.magazines, err = NewEntity(s, "magazines", magazinePrefix, MagazineRecord); err != nil {
		_ = s.books.release()
		_ = db.Close()
		return nil, err
	}

	if logger != nil {
		logger.Info("Badger database opened", "path", path, "in_memory", o.inMemory, "timeout", o.timeout)
	}
	return s, nil
}

// Books returns the book collection.
func (s *Store) Books() Collection[domain.Book] { return s.books }

// Magazines returns the magazine collection.
func (s *Store) Magazines() Collection[domain.Magazine] { return s.magazines }

// Ping checks that the database answers a read transaction.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if s.db.IsClosed() {
		return Fail("ping", errors.New("database closed"))
	}
	err := s.db.View(func(*badger.Txn) error { return nil })
	if err == nil {
		err = ctx.Err()
	}
	return Fail("ping", err)
}

// Close releases the sequence leases and closes the database. Closing a
// closed store does nothing.
func (s *Store) Close() error {
	if s.db.IsClosed() {
		return nil
	}
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return errors.Join(
		s.books.release(),
		s.magazines.release(),
		s.db.Close(),
	)
}

// Stats describes the database for operators.
type Stats struct {
	Books     int
	Magazines int
	LSMBytes  int64
	VLogBytes int64
}

// Stats counts records per collection and reports on-disk sizes.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error
	if st.Books, err = s.books.Count(ctx); err != nil {
		return st, err
	}
	if st.Magazines, err = s.magazines.Count(ctx); err != nil {
		return st, err
	}
	st.LSMBytes, st.VLogBytes = s.db.Size()
	return st, nil
}

// bound applies the per-call timeout. Badger transactions are not
// interruptible, so the deadline is checked before each one and between
// iterator steps.
func (s *Store) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// maxConflictRetries caps how often update replays a transaction that lost
// a commit race on the same keys.
const maxConflictRetries = 100

// update runs fn in a read-write transaction, replaying it from scratch when
// a concurrent commit touched the keys it read. The last commit wins.
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	for attempt := 0; ; attempt++ {
		err := s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) || attempt == maxConflictRetries {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}
