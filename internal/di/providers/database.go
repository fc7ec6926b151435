package providers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/bookstoreapp/bookstore-server/internal/config"
	"github.com/bookstoreapp/bookstore-server/internal/logger"
	"github.com/bookstoreapp/bookstore-server/internal/sse"
	"github.com/bookstoreapp/bookstore-server/internal/store"
	"github.com/bookstoreapp/bookstore-server/internal/store/sqlite"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.WithComponent("sse").Logger)

	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// StoreHandle wraps the catalog store with shutdown capability.
type StoreHandle struct {
	store.Catalog
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the catalog store selected by STORE_BACKEND.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	catalog, err := OpenCatalog(cfg, log)
	if err != nil {
		return nil, err
	}
	return &StoreHandle{Catalog: catalog}, nil
}

// OpenCatalog opens the configured backend under the data path. The admin
// CLI shares it with the server.
func OpenCatalog(cfg *config.Config, log *logger.Logger) (store.Catalog, error) {
	if err := os.MkdirAll(cfg.Store.DataPath, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	switch cfg.Store.Backend {
	case config.BackendSQLite:
		dbPath := filepath.Join(cfg.Store.DataPath, "catalog.db")
		db, err := sqlite.Open(dbPath, log.Logger, cfg.Store.Timeout)
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "backend", cfg.Store.Backend, "path", dbPath)
		return db, nil
	default:
		dbPath := filepath.Join(cfg.Store.DataPath, "db")
		db, err := store.New(dbPath, log.Logger, store.WithTimeout(cfg.Store.Timeout))
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "backend", cfg.Store.Backend, "path", dbPath)
		return db, nil
	}
}

// ProvideSlogLogger provides access to the underlying slog.Logger for packages that need it.
func ProvideSlogLogger(i do.Injector) (*slog.Logger, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return log.Logger, nil
}
