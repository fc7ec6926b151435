package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bookstoreapp/bookstore-server/internal/config"
	"github.com/bookstoreapp/bookstore-server/internal/di/providers"
	"github.com/bookstoreapp/bookstore-server/internal/logger"
	"github.com/bookstoreapp/bookstore-server/internal/search"
	"github.com/bookstoreapp/bookstore-server/internal/service"
	"github.com/bookstoreapp/bookstore-server/internal/sse"
	"github.com/bookstoreapp/bookstore-server/internal/store"
)

type globalFlags struct {
	dataPath string
	backend  string
	logLevel string
	envFile  string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Administer the bookstore catalog",
		Long:          "Seed, inspect, export and import the bookstore catalog store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.dataPath, "data-path", "", "Directory holding the catalog store (default: DATA_PATH or ~/Bookstore/data)")
	pf.StringVar(&flags.backend, "store-backend", "", "Store backend: badger or sqlite (default: STORE_BACKEND or badger)")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.envFile, "env-file", ".env", "Path to .env file")

	root.AddCommand(
		newSeedCmd(&flags),
		newInspectCmd(&flags),
		newExportCmd(&flags),
		newImportCmd(&flags),
		newReindexCmd(&flags),
	)
	return root
}

// env is an opened catalog plus the configuration it came from.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	catalog store.Catalog
	index   *search.SearchIndex
}

func (f *globalFlags) args() []string {
	args := []string{"--env-file=" + f.envFile, "--log-level=" + f.logLevel}
	if f.dataPath != "" {
		args = append(args, "--data-path="+f.dataPath)
	}
	if f.backend != "" {
		args = append(args, "--store-backend="+f.backend)
	}
	return args
}

// open loads the configuration and opens the store. When withSearch is set
// and search is enabled, the search index is opened too.
func open(f *globalFlags, withSearch bool) (*env, error) {
	cfg, err := config.Load(f.args())
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Writer:      os.Stderr,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	catalog, err := providers.OpenCatalog(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	e := &env{cfg: cfg, log: log, catalog: catalog}
	if withSearch && cfg.Search.Enabled {
		e.index, err = search.NewSearchIndex(search.Options{DataPath: cfg.Store.DataPath, Logger: log.Logger})
		if err != nil {
			_ = catalog.Close()
			return nil, fmt.Errorf("open search index: %w", err)
		}
	}
	return e, nil
}

func (e *env) searchService() *service.SearchService {
	return service.NewSearchService(e.index, e.catalog, e.log.Logger)
}

// services builds the write services. Changes are indexed when the search
// index is open; there are no live clients to notify.
func (e *env) services() (*service.BookService, *service.MagazineService) {
	indexer := e.searchService()
	return service.NewBookService(e.catalog, indexer, sse.NoopEmitter{}, e.log.Logger),
		service.NewMagazineService(e.catalog, indexer, sse.NoopEmitter{}, e.log.Logger)
}

func (e *env) Close() error {
	var errs []error
	if e.index != nil {
		errs = append(errs, e.index.Close())
	}
	errs = append(errs, e.catalog.Close())
	return errors.Join(errs...)
}
