package catalog

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/logger"
)

// Watch reloads the catalog file whenever it changes and passes the new
// items to fn. It blocks until ctx is cancelled. A reload that fails to
// parse or validate is logged and skipped; the previous catalog stays
// active.
func Watch(ctx context.Context, path string, fn func([]domain.SearchableItem)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops
	// a watch registered on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			items, err := LoadFile(path)
			if err != nil {
				logger.Error("catalog reload: %v", err)
				continue
			}
			logger.Info("catalog reloaded: %d items", len(items))
			fn(items)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watch: %v", err)
		}
	}
}
