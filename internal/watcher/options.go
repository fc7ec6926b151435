package watcher

import (
	"path/filepath"
	"strings"
	"time"
)

// Options configures the file watcher behavior.
type Options struct {
	// Patterns limits events to matching base names. Empty matches all.
	Patterns     []string
	SettleDelay  time.Duration
	IgnoreHidden bool
}

// setDefaults applies default values to unset options.
func (o *Options) setDefaults() {
	if o.SettleDelay == 0 {
		o.SettleDelay = 150 * time.Millisecond
	}
}

// shouldIgnore reports whether path is outside the watched set.
func (o *Options) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if o.IgnoreHidden && strings.HasPrefix(base, ".") {
		return true
	}
	if len(o.Patterns) == 0 {
		return false
	}
	for _, pattern := range o.Patterns {
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return false
		}
	}
	return true
}
