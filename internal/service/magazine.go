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

// MagazineService orchestrates magazine operations.
type MagazineService struct {
	magazines store.Collection[domain.Magazine]
	indexer   Indexer
	events    sse.Emitter
	logger    *slog.Logger
	validator *validation.Validator
}

// NewMagazineService creates a new magazine service.
func NewMagazineService(catalog store.Catalog, indexer Indexer, events sse.Emitter, logger *slog.Logger) *MagazineService {
	return &MagazineService{
		magazines: catalog.Magazines(),
		indexer:   indexer,
		events:    events,
		logger:    logger,
		validator: validation.New(),
	}
}

// List returns every magazine in store order.
func (s *MagazineService) List(ctx context.Context) ([]*domain.Magazine, error) {
	return s.magazines.List(ctx)
}

// Get returns a single magazine.
func (s *MagazineService) Get(ctx context.Context, magazineID string) (*domain.Magazine, error) {
	return s.magazines.Get(ctx, magazineID)
}

// Create stores a new magazine with a fresh id.
func (s *MagazineService) Create(ctx context.Context, in MagazineInput) (*domain.Magazine, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	mag, err := in.toMagazine()
	if err != nil {
		return nil, err
	}

	if mag.ID, err = id.Generate(id.PrefixMagazine); err != nil {
		return nil, err
	}
	mag.InitTimestamps()

	if err := s.magazines.Create(ctx, mag); err != nil {
		s.logger.Error("failed to create magazine", "error", err)
		return nil, err
	}

	s.indexer.IndexMagazine(ctx, mag)
	s.events.Emit(sse.NewMagazineCreatedEvent(mag))
	s.logger.Info("magazine created", "magazine_id", mag.ID, "seq", mag.Seq)
	return mag, nil
}

// Replace overwrites every field of an existing magazine.
func (s *MagazineService) Replace(ctx context.Context, magazineID string, in MagazineInput) (*domain.Magazine, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	mag, err := in.toMagazine()
	if err != nil {
		return nil, err
	}
	mag.Touch()

	if err := s.magazines.Replace(ctx, magazineID, mag); err != nil {
		return nil, err
	}

	s.indexer.IndexMagazine(ctx, mag)
	s.events.Emit(sse.NewMagazineUpdatedEvent(mag))
	s.logger.Info("magazine replaced", "magazine_id", mag.ID)
	return mag, nil
}

// Delete removes a magazine. Deleting an unknown id succeeds.
func (s *MagazineService) Delete(ctx context.Context, magazineID string) error {
	if err := s.magazines.Delete(ctx, magazineID); err != nil {
		s.logger.Error("failed to delete magazine", "magazine_id", magazineID, "error", err)
		return err
	}

	s.indexer.Remove(ctx, magazineID)
	s.events.Emit(sse.NewMagazineDeletedEvent(magazineID))
	return nil
}

// GroupByAuthor returns magazines grouped by author with title and ISBN
// only, largest group first.
func (s *MagazineService) GroupByAuthor(ctx context.Context) ([]domain.AuthorGroup[domain.BriefSummary], error) {
	mags, err := s.magazines.List(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.BriefByAuthor(mags, (*domain.Magazine).AuthorKey, aggregate.MagazineBrief), nil
}
