package site

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 500 * time.Millisecond

// Watcher triggers onChange when files under the issues tree change.
// Events are debounced because editors and importers touch several files
// in quick succession and one rebuild covers them all.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func()
}

func NewWatcher(issuesDir string, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{watcher: fsWatcher, onChange: onChange}
	if err := w.addTree(issuesDir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// Run blocks until ctx is cancelled, firing the debounced callback for
// relevant filesystem events. New issue directories are picked up as they
// appear.
func (w *Watcher) Run(ctx context.Context) {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}

			if event.Op.Has(fsnotify.Create) {
				// Best effort: a failed add just means changes inside the
				// new directory go unseen until the next restart.
				_ = w.addTree(event.Name)
			}

			if timer == nil {
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", "error", err)

		case <-fire:
			timer = nil
			slog.Debug("Issue files changed, rebuilding")
			w.onChange()
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
}

// relevant filters out the build's own outputs, otherwise every rebuild
// would immediately schedule the next one.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(event.Name)
	switch name {
	case "index.html", "issue-data.json":
		return false
	}
	return !strings.Contains(name, ".tmp-")
}
