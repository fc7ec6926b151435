package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/bookstoreapp/bookstore-server/internal/api"
	"github.com/bookstoreapp/bookstore-server/internal/config"
	"github.com/bookstoreapp/bookstore-server/internal/logger"
)

// ProvidePages parses the HTML templates, from TEMPLATES_DIR when set.
func ProvidePages(i do.Injector) (*api.Pages, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return api.NewPages(cfg.Web.TemplatesDir, log.WithComponent("pages").Logger)
}

// TemplateWatcherHandle runs the template reload loop.
type TemplateWatcherHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Shutdown implements do.Shutdownable.
func (h *TemplateWatcherHandle) Shutdown() error {
	h.cancel()
	<-h.done
	return nil
}

// ProvideTemplateWatcher reloads templates from TEMPLATES_DIR on change.
// With embedded templates the loop exits at once.
func ProvideTemplateWatcher(i do.Injector) (*TemplateWatcherHandle, error) {
	pages := do.MustInvoke[*api.Pages](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		if err := pages.Watch(ctx); err != nil {
			log.WithError(err).Error("Template watcher stopped")
		}
	}()

	return &TemplateWatcherHandle{cancel: cancel, done: done}, nil
}
