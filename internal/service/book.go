package service

import (
	"context"
	"log/slog"

	"github.com/bookstoreapp/bookstore-server/internal/aggregate"
	"github.com/bookstoreapp/bookstore-server/internal/domain"
	"github.com/bookstoreapp/bookstore-server/internal/id"
	"github.com/bookstoreapp/bookstore-server/internal/sse"
	"github.com/bookstoreapp/bookstore-server/internal/store"
	"github.com/bookstoreapp/bookstore-server/internal/validation"
)

// BookService orchestrates book operations. Successful writes are pushed
// to the search index and broadcast as change events.
type BookService struct {
	books     store.Collection[domain.Book]
	indexer   Indexer
	events    sse.Emitter
	logger    *slog.Logger
	validator *validation.Validator
}

// NewBookService creates a new book service.
func NewBookService(catalog store.Catalog, indexer Indexer, events sse.Emitter, logger *slog.Logger) *BookService {
	return &BookService{
		books:     catalog.Books(),
		indexer:   indexer,
		events:    events,
		logger:    logger,
		validator: validation.New(),
	}
}

// List returns every book in store order.
func (s *BookService) List(ctx context.Context) ([]*domain.Book, error) {
	return s.books.List(ctx)
}

// Get returns a single book.
func (s *BookService) Get(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.books.Get(ctx, bookID)
}

// Create stores a new book with a fresh id.
func (s *BookService) Create(ctx context.Context, in BookInput) (*domain.Book, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	book, err := in.toBook()
	if err != nil {
		return nil, err
	}

	if book.ID, err = id.Generate(id.PrefixBook); err != nil {
		return nil, err
	}
	book.InitTimestamps()

	if err := s.books.Create(ctx, book); err != nil {
		s.logger.Error("failed to create book", "error", err)
		return nil, err
	}

	s.indexer.IndexBook(ctx, book)
	s.events.Emit(sse.NewBookCreatedEvent(book))
	s.logger.Info("book created", "book_id", book.ID, "seq", book.Seq)
	return book, nil
}

// Replace overwrites every field of an existing book.
func (s *BookService) Replace(ctx context.Context, bookID string, in BookInput) (*domain.Book, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	book, err := in.toBook()
	if err != nil {
		return nil, err
	}
	book.Touch()

	if err := s.books.Replace(ctx, bookID, book); err != nil {
		return nil, err
	}

	s.indexer.IndexBook(ctx, book)
	s.events.Emit(sse.NewBookUpdatedEvent(book))
	s.logger.Info("book replaced", "book_id", book.ID)
	return book, nil
}

// Delete removes a book. Deleting an unknown id succeeds.
func (s *BookService) Delete(ctx context.Context, bookID string) error {
	if err := s.books.Delete(ctx, bookID); err != nil {
		s.logger.Error("failed to delete book", "book_id", bookID, "error", err)
		return err
	}

	s.indexer.Remove(ctx, bookID)
	s.events.Emit(sse.NewBookDeletedEvent(bookID))
	return nil
}

// GroupByAuthor returns books grouped by author with title and ISBN only,
// largest group first.
func (s *BookService) GroupByAuthor(ctx context.Context) ([]domain.AuthorGroup[domain.BriefSummary], error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.BriefByAuthor(books, (*domain.Book).AuthorKey, aggregate.BookBrief), nil
}
