package storage

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/abdul-hamid-achik/reqvault/packages/history"
)

// TailHistory watches the history file and invokes fn with the newest
// entry each time one is appended. It blocks until ctx is cancelled.
func (s *Storage) TailHistory(ctx context.Context, fn func(*history.Entry)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory rather than the file itself: atomic writes
	// replace the file, which drops a watch on the old inode.
	if err := watcher.Add(s.base); err != nil {
		return err
	}

	seen := map[string]bool{}
	if entries, err := s.LoadHistory(); err == nil {
		for _, e := range entries {
			seen[e.ID] = true
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.HistoryPath() {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			entries, err := s.LoadHistory()
			if err != nil {
				continue
			}
			// Newest first; report unseen entries oldest-new first.
			for i := len(entries) - 1; i >= 0; i-- {
				e := entries[i]
				if seen[e.ID] {
					continue
				}
				seen[e.ID] = true
				fn(e)
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
