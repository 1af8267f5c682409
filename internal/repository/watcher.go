package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bassista/go_recipes/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// StartWatcher calls onChange with a fresh List whenever recipe files in the
// root are created, written, removed or renamed, e.g. by hand or by another
// process. It watches the directory (not single files) so atomic replace
// sequences (temp+rename) are observed. Bursts are debounced. The caller owns
// ctx: cancel it to stop the goroutine and close the watcher.
func (r *FileRepository) StartWatcher(ctx context.Context, onChange func(names []string)) error {
	if onChange == nil {
		return errors.New("onChange callback is required")
	}
	if err := os.MkdirAll(r.root, 0o755); err != nil {
		return fmt.Errorf("prepare recipes dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(r.root); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	reload := func() {
		names, err := r.List(ctx)
		if err != nil {
			logger.WithComponent("recipe-watcher").Warnf("reload failed: %v", err)
			return
		}
		logger.WithComponent("recipe-watcher").Debugf("recipes changed on disk, %d recipes", len(names))
		onChange(names)
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()
		schedule := func() {
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, reload)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if _, isRecipe := NameFor(filepath.Base(event.Name)); !isRecipe {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithComponent("recipe-watcher").Errorf("watcher error: %v", err)
			}
		}
	}()

	return nil
}
