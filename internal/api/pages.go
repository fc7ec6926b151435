package api

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	"github.com/bookstoreapp/bookstore-server/internal/watcher"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Pages holds the parsed HTML templates. When built from a directory the
// set can be reparsed while the server runs.
type Pages struct {
	mu     sync.RWMutex
	set    *template.Template
	source fs.FS
	dir    string
	logger *slog.Logger
}

// NewPages parses the templates in dir, or the embedded templates when
// dir is empty.
func NewPages(dir string, logger *slog.Logger) (*Pages, error) {
	p := &Pages{dir: dir, logger: logger}
	if dir == "" {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("open embedded templates: %w", err)
		}
		p.source = sub
	} else {
		p.source = os.DirFS(dir)
	}

	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload reparses the template set. On failure the previous set stays in
// use.
func (p *Pages) Reload() error {
	set, err := template.New("pages").Funcs(templateFuncs()).ParseFS(p.source, "*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	p.mu.Lock()
	p.set = set
	p.mu.Unlock()
	return nil
}

// Watch reparses templates whenever a file in the template directory
// settles after a change. It returns at once for embedded templates and
// otherwise blocks until ctx is canceled.
func (p *Pages) Watch(ctx context.Context) error {
	if p.dir == "" {
		return nil
	}

	w, err := watcher.New(p.logger, watcher.Options{
		Patterns:     []string{"*.html"},
		IgnoreHidden: true,
	})
	if err != nil {
		return err
	}
	defer w.Stop() //nolint:errcheck // best effort on shutdown

	if err := w.Watch(p.dir); err != nil {
		return err
	}

	go func() { _ = w.Start(ctx) }()
	p.logger.Info("watching templates", "dir", p.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-w.Events():
			if err := p.Reload(); err != nil {
				p.logger.Error("template reload failed", "path", event.Path, "error", err)
				continue
			}
			p.logger.Info("templates reloaded", "path", event.Path, "change", event.Type.String())
		case err := <-w.Errors():
			p.logger.Warn("template watcher error", "error", err)
		}
	}
}

// Render executes the named page into w. The page is rendered to a buffer
// first so a template error never leaves a half-written response.
func (p *Pages) Render(w http.ResponseWriter, status int, name string, data any) error {
	p.mu.RLock()
	set := p.set
	p.mu.RUnlock()

	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func templateFuncs() template.FuncMap {
	printer := message.NewPrinter(language.English)
	return template.FuncMap{
		"count": func(n int) string { return printer.Sprintf("%d", n) },
		"author": func(k domain.AuthorKey) string {
			if !k.IsKnown() {
				return "Unknown author"
			}
			return k.String()
		},
		"optional": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"date": domain.FormatDate,
	}
}
