package fixtures

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/jonesrussell/problem-finder/internal/logger"
)

// Watch loads the override file and reloads it whenever it changes on disk.
// Watching stops when ctx is cancelled. The parent directory is watched
// rather than the file itself so editors that replace the file atomically
// (write to temp, rename) still trigger a reload.
func (s *Store) Watch(ctx context.Context, path string) error {
	if err := s.LoadFile(path); err != nil {
		// Start from the embedded dataset; the watcher still picks up a
		// later fix to the file.
		s.logger.Warn("Fixture override not loaded, keeping embedded dataset",
			logger.String("path", path),
			logger.Error(err),
		)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fixture watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if watchErr := watcher.Add(dir); watchErr != nil {
		watcher.Close()
		return fmt.Errorf("watch fixture directory %s: %w", dir, watchErr)
	}

	target := filepath.Clean(path)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if loadErr := s.LoadFile(path); loadErr != nil {
					s.logger.Warn("Fixture reload failed, keeping previous dataset",
						logger.String("path", path),
						logger.Error(loadErr),
					)
				}
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("Fixture watcher error", logger.Error(watchErr))
			}
		}
	}()

	return nil
}
