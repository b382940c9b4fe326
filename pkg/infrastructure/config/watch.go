package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// reloadOps are the directory events that mean the request file has new
// content. An atomic save (temp file renamed over the target) arrives as
// Create on the target name.
const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// WatchRequest re-reads the request file at path on every save and passes
// the result to onChange until ctx is cancelled.
//
// The parent directory is watched rather than the file, so saves that
// replace the file keep being seen. A save that does not parse is logged
// and skipped.
func WatchRequest(ctx context.Context, path string, logger *slog.Logger, onChange func(*Request)) error {
	if logger == nil {
		logger = slog.Default()
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: resolve %s: %w", path, err)
	}
	target = filepath.Clean(target)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("config: watch %s: %w", filepath.Dir(target), err)
	}
	logger.Info("config: watching request file", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRequestSave(event, target) {
				continue
			}

			req, err := LoadRequest(target)
			if err != nil {
				logger.Warn("config: request reload failed", "path", target, "op", event.Op.String(), "err", err)
				continue
			}
			logger.Debug("config: request reloaded", "path", target, "op", event.Op.String())
			onChange(req)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("config: watcher error", "err", err)
		}
	}
}

func isRequestSave(event fsnotify.Event, target string) bool {
	if event.Op&reloadOps == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return filepath.Clean(name) == target
}
