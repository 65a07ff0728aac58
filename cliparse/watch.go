package cliparse

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay collapses the burst of events a single save produces.
const reloadDelay = 100 * time.Millisecond

// Watch monitors the loader's config file and calls onChange with the
// rebuilt Config after each save settles. Environment variables and set
// flags keep their precedence over the file. Empty files and files that
// fail to load are logged and skipped. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, l *Loader, onChange func(Config)) error {
	if l.Path() == "" {
		return errors.New("config: no config file to watch")
	}
	path := filepath.Clean(l.Path())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// The directory is watched so saves that rename a temp file over path
	// are seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	slog.Info("config: watching for changes", "path", path)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fire = time.After(reloadDelay)

		case <-fire:
			fire = nil

			if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
				slog.Debug("config: file missing or empty, skipping reload", "path", path)
				continue
			}

			cfg, err := l.Load()
			if err != nil {
				slog.Error("config: reload failed, keeping previous config",
					"path", path, "error", err)
				continue
			}

			slog.Info("config: reloaded", "path", path)
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "error", err)
		}
	}
}
