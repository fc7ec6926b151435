package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookstoreapp/bookstore-server/internal/logger"
	"github.com/bookstoreapp/bookstore-server/internal/service"
)

// ProvideBookService provides the book service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Catalog, searchService, sseHandle.Manager, log.Logger), nil
}

// ProvideMagazineService provides the magazine service.
func ProvideMagazineService(i do.Injector) (*service.MagazineService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMagazineService(storeHandle.Catalog, searchService, sseHandle.Manager, log.Logger), nil
}

// ProvideAggregateService provides the cross-collection aggregate service.
func ProvideAggregateService(i do.Injector) (*service.AggregateService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAggregateService(storeHandle.Catalog, log.Logger), nil
}
