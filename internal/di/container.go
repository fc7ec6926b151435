// Package di provides dependency injection configuration for the bookstore server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookstoreapp/bookstore-server/internal/api"
	"github.com/bookstoreapp/bookstore-server/internal/config"
	"github.com/bookstoreapp/bookstore-server/internal/di/providers"
	"github.com/bookstoreapp/bookstore-server/internal/logger"
	"github.com/bookstoreapp/bookstore-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()
	register(injector)
	return injector
}

func register(injector do.Injector) {
	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Business services
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideMagazineService)
	do.Provide(injector, providers.ProvideAggregateService)

	// Presentation
	do.Provide(injector, providers.ProvidePages)
	do.Provide(injector, providers.ProvideTemplateWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
}

// Bootstrap initializes all services. Invoking a provider with
// do.Invoke rather than MustInvoke turns a startup failure, such as an
// unreadable database, into an error instead of a panic.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SSEManagerHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*service.SearchService](injector)

	// Business services
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.MagazineService](injector)
	_ = do.MustInvoke[*service.AggregateService](injector)

	if _, err := do.Invoke[*api.Pages](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*providers.TemplateWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	providers.LoadSearchIndexIfNeeded(injector)

	return nil
}
