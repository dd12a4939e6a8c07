// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch converts clippings as the web clipper drops them into a
// directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/clipnote/internal/convert"
	"github.com/pdiddy/clipnote/internal/logging"
)

// DefaultSettle is how long a clipping must stay quiet before it is handled.
const DefaultSettle = 500 * time.Millisecond

// minTick is the shortest interval at which pending clippings are checked.
const minTick = time.Millisecond

// Handler is called once per settled clipping path.
type Handler func(ctx context.Context, path string)

// Watcher watches one directory for created or rewritten clippings.
type Watcher struct {
	dir    string
	handle Handler
	logger *slog.Logger
	settle time.Duration
	ready  chan struct{}
	once   sync.Once
}

// New returns a Watcher for dir. A nil logger discards diagnostics.
func New(dir string, handle Handler, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Watcher{
		dir:    dir,
		handle: handle,
		logger: logger,
		settle: DefaultSettle,
		ready:  make(chan struct{}),
	}
}

// SetSettle changes the quiet period. Non-positive values are ignored.
func (w *Watcher) SetSettle(d time.Duration) {
	if d > 0 {
		w.settle = d
	}
}

// Ready is closed once the directory is first being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Relevant reports whether ev may carry a new or changed clipping.
func Relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	return convert.IsClipping(ev.Name)
}

// Run watches until ctx is cancelled. Bursts of events for one path are
// coalesced, and the handler runs on the watching goroutine once the path
// has been quiet for the settle period.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.logger.Info("watching for clippings", "dir", w.dir)
	w.once.Do(func() { close(w.ready) })

	ticker := time.NewTicker(max(w.settle/2, minTick))
	defer ticker.Stop()
	pending := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped", "dir", w.dir)
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !Relevant(ev) {
				continue
			}
			w.logger.Debug("clipping event", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = time.Now().Add(w.settle)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case now := <-ticker.C:
			for path, due := range pending {
				if now.Before(due) {
					continue
				}
				delete(pending, path)
				w.handle(ctx, path)
			}
		}
	}
}
