package worlds

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultSettle = 500 * time.Millisecond

// Watcher notifies when the set of worlds, or a world's logs, may have
// changed. Bursts of filesystem events are collapsed into one notification.
type Watcher struct {
	inv     *Inventory
	watcher *fsnotify.Watcher
	settle  time.Duration
	logger  *slog.Logger
}

func NewWatcher(inv *Inventory, settle time.Duration) (*Watcher, error) {
	if settle <= 0 {
		settle = defaultSettle
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(inv.Root()); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch worlds root %s: %w", inv.Root(), err)
	}

	w := &Watcher{inv: inv, watcher: fw, settle: settle, logger: inv.logger}
	for _, world := range inv.ListWorlds() {
		w.addWorld(world.Path)
	}
	return w, nil
}

// addWorld watches a world directory and its logs directory when present.
func (w *Watcher) addWorld(path string) {
	for _, dir := range []string{path, filepath.Join(path, LogsDirName)} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Debug("failed to watch directory", "path", dir, "error", err)
		}
	}
}

// Run blocks until ctx is done, calling onChange after each settled burst.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	// nil until an event arrives, so the settle case never fires early
	var settled <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.logger.Debug("world change detected", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addWorld(event.Name)
				}
			}
			settled = time.After(w.settle)
		case <-settled:
			settled = nil
			onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("world watcher error", "error", err)
		}
	}
}
