package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/bookstoreapp/bookstore-server/internal/aggregate"
	"github.com/bookstoreapp/bookstore-server/internal/domain"
	"github.com/bookstoreapp/bookstore-server/internal/store"
)

// AggregateService builds views that span both collections.
type AggregateService struct {
	catalog store.Catalog
	logger  *slog.Logger
}

// NewAggregateService creates a new aggregate service.
func NewAggregateService(catalog store.Catalog, logger *slog.Logger) *AggregateService {
	return &AggregateService{catalog: catalog, logger: logger}
}

// HomeView is everything the landing page shows.
type HomeView struct {
	Books     []*domain.Book
	Magazines []*domain.Magazine
}

// Combined groups both collections by author and merges the groupings.
// A failure reading either collection fails the whole view.
func (s *AggregateService) Combined(ctx context.Context) ([]domain.CombinedAuthorRecord, error) {
	books, magazines, err := s.readBoth(ctx)
	if err != nil {
		s.logger.Error("failed to read catalog for aggregation", "error", err)
		return nil, err
	}
	return aggregate.Merge(
		aggregate.BooksByAuthor(books),
		aggregate.MagazinesByAuthor(magazines),
	), nil
}

// Home returns every book and magazine in store order.
func (s *AggregateService) Home(ctx context.Context) (*HomeView, error) {
	books, magazines, err := s.readBoth(ctx)
	if err != nil {
		return nil, err
	}
	return &HomeView{Books: books, Magazines: magazines}, nil
}

func (s *AggregateService) readBoth(ctx context.Context) ([]*domain.Book, []*domain.Magazine, error) {
	var (
		books     []*domain.Book
		magazines []*domain.Magazine
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = s.catalog.Books().List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		magazines, err = s.catalog.Magazines().List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return books, magazines, nil
}
