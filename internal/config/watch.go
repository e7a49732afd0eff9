package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/tmux-jump/internal/logging"
	"github.com/atomicstack/tmux-jump/internal/logging/events"
	"github.com/atomicstack/tmux-jump/internal/selection"
)

const reloadDebounce = 150 * time.Millisecond

// WatchFile calls onChange with freshly loaded options each time path is
// written, created or replaced. The parent directory is watched so editors
// that save via rename are still seen. onChange runs on a timer goroutine.
// WatchFile blocks until ctx is cancelled.
func WatchFile(ctx context.Context, path string, onChange func(selection.Options, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !isReload(event) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				opts, err := reload(target)
				events.Config.Reload(target, err)
				if err != nil {
					logging.Error(err)
				}
				onChange(opts, err)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error(fmt.Errorf("config watcher: %w", err))
		}
	}
}

func reload(path string) (selection.Options, error) {
	file, err := LoadFile(path)
	if err != nil {
		return selection.Options{}, err
	}
	return file.Options()
}

func isReload(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
