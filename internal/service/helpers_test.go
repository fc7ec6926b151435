package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	"github.com/bookstoreapp/bookstore-server/internal/logger"
	"github.com/bookstoreapp/bookstore-server/internal/search"
	"github.com/bookstoreapp/bookstore-server/internal/sse"
	"github.com/bookstoreapp/bookstore-server/internal/store"
)

func ptr(s string) *string { return &s }

// recorder captures emitted events.
type recorder struct {
	mu     sync.Mutex
	events []sse.Event
}

func (r *recorder) Emit(e sse.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []sse.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sse.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	catalog   store.Catalog
	events    *recorder
	search    *SearchService
	books     *BookService
	magazines *MagazineService
	aggregate *AggregateService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.Discard().Logger

	catalog, err := store.New("", log, store.InMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = catalog.Close() })

	index, err := search.NewSearchIndex(search.Options{InMemory: true, Logger: log})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	events := &recorder{}
	searchSvc := NewSearchService(index, catalog, log)
	return &fixture{
		catalog:   catalog,
		events:    events,
		search:    searchSvc,
		books:     NewBookService(catalog, searchSvc, events, log),
		magazines: NewMagazineService(catalog, searchSvc, events, log),
		aggregate: NewAggregateService(catalog, log),
	}
}

var errDiskGone = errors.New("disk gone")

// brokenCatalog fails every List on the magazines collection.
type brokenCatalog struct {
	store.Catalog
}

func (c brokenCatalog) Magazines() store.Collection[domain.Magazine] {
	return brokenMagazines{c.Catalog.Magazines()}
}

type brokenMagazines struct {
	store.Collection[domain.Magazine]
}

func (brokenMagazines) List(context.Context) ([]*domain.Magazine, error) {
	return nil, store.Fail("list magazines", errDiskGone)
}
