package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	"github.com/bookstoreapp/bookstore-server/internal/search"
	"github.com/bookstoreapp/bookstore-server/internal/store"
)

// Indexer keeps the search index in step with catalog writes.
// Implementations log failures instead of returning them so a write never
// fails because of the index.
type Indexer interface {
	IndexBook(ctx context.Context, b *domain.Book)
	IndexMagazine(ctx context.Context, m *domain.Magazine)
	Remove(ctx context.Context, id string)
}

// NoopIndexer discards every update.
type NoopIndexer struct{}

func (NoopIndexer) IndexBook(context.Context, *domain.Book)         {}
func (NoopIndexer) IndexMagazine(context.Context, *domain.Magazine) {}
func (NoopIndexer) Remove(context.Context, string)                  {}

// SearchService bridges the search index with the catalog store.
// A service built with a nil index is disabled: updates are dropped and
// queries return no hits.
type SearchService struct {
	index   *search.SearchIndex
	catalog store.Catalog
	logger  *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, catalog store.Catalog, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:   index,
		catalog: catalog,
		logger:  logger,
	}
}

// Enabled reports whether the service has an index behind it.
func (s *SearchService) Enabled() bool {
	return s.index != nil
}

// Search runs a query. An unknown kind is rejected by the caller; an
// empty kind searches both collections.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if !s.Enabled() {
		return &search.Result{Query: params.Query, Hits: []search.Hit{}}, nil
	}
	return s.index.Search(ctx, params)
}

// DocumentCount returns the number of indexed documents.
func (s *SearchService) DocumentCount() (uint64, error) {
	if !s.Enabled() {
		return 0, nil
	}
	return s.index.DocumentCount()
}

// IndexBook indexes a single book.
func (s *SearchService) IndexBook(_ context.Context, b *domain.Book) {
	if !s.Enabled() {
		return
	}
	if err := s.index.IndexDocument(search.BookToDocument(b)); err != nil {
		s.logger.Warn("failed to index book", "book_id", b.ID, "error", err)
		return
	}
	s.logger.Debug("indexed book", "id", b.ID, "title", b.Title)
}

// IndexMagazine indexes a single magazine.
func (s *SearchService) IndexMagazine(_ context.Context, m *domain.Magazine) {
	if !s.Enabled() {
		return
	}
	if err := s.index.IndexDocument(search.MagazineToDocument(m)); err != nil {
		s.logger.Warn("failed to index magazine", "magazine_id", m.ID, "error", err)
		return
	}
	s.logger.Debug("indexed magazine", "id", m.ID, "title", m.Title)
}

// Remove drops a record from the index.
func (s *SearchService) Remove(_ context.Context, id string) {
	if !s.Enabled() {
		return
	}
	if err := s.index.DeleteDocument(id); err != nil {
		s.logger.Warn("failed to remove document from search index", "id", id, "error", err)
	}
}

// Reindex rebuilds the index from the store.
func (s *SearchService) Reindex(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	return s.load(ctx)
}

// EnsureLoaded fills a freshly created index from the store. It does
// nothing when the index already holds the catalog.
func (s *SearchService) EnsureLoaded(ctx context.Context) error {
	if !s.Enabled() || !s.index.Fresh() {
		return nil
	}
	return s.load(ctx)
}

func (s *SearchService) load(ctx context.Context) error {
	books, err := s.catalog.Books().List(ctx)
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}
	magazines, err := s.catalog.Magazines().List(ctx)
	if err != nil {
		return fmt.Errorf("list magazines: %w", err)
	}

	docs := make([]*search.Document, 0, len(books)+len(magazines))
	for _, b := range books {
		docs = append(docs, search.BookToDocument(b))
	}
	for _, m := range magazines {
		docs = append(docs, search.MagazineToDocument(m))
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index documents: %w", err)
	}
	s.index.MarkLoaded()
	s.logger.Info("search index loaded", "books", len(books), "magazines", len(magazines))
	return nil
}
