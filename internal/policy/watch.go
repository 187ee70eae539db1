package policy

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever the policy file changes, until ctx is
// canceled. Reload failures keep the last good table. onReload, when
// non-nil, is invoked after every reload attempt with its outcome.
func (s *Store) Watch(ctx context.Context, path string, log *slog.Logger, onReload func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}
	log.Info("watching policy file", "path", path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			err := s.LoadFile(path)
			if err != nil {
				log.Error("policy reload failed, keeping previous table", "path", path, "error", err)
			} else {
				log.Info("policy reloaded", "path", path, "roles", len(s.Roles()))
			}
			if onReload != nil {
				onReload(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("policy watcher error", "error", err)
		}
	}
}
