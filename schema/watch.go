package schema

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch loads the schema file at path and reloads it whenever it is written
// or recreated, until ctx is done. The initial load error is returned; later
// reload failures are logged and the previous descriptors stay in place.
//
// The parent directory is watched rather than the file itself, so editors
// that replace the file with a rename are handled.
func (r *Registry) Watch(ctx context.Context, path string) error {
	if err := r.LoadFile(path); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("schema: watch: %w", err)
	}
	defer w.Close()
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("schema: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("schema: watch: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := r.LoadFile(abs); err != nil {
				r.logger.Warn("schema reload failed", "path", abs, "error", err)
				continue
			}
			r.logger.Info("schema reloaded", "path", abs)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("schema watcher error", "path", abs, "error", err)
		}
	}
}
