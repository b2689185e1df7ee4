package schema

import (
	"context"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of filesystem events (editors write, rename,
// and chmod in quick succession) into one reload.
const watchDebounce = 500 * time.Millisecond

// Watch reloads the store whenever a descriptor file in the backing
// directory changes. It blocks until ctx is cancelled; run it on its own
// goroutine. onReload, if non-nil, is invoked after each successful reload.
func (s *Store) Watch(ctx context.Context, onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return err
	}

	var timer *time.Timer
	reload := func() {
		if err := s.Reload(); err != nil {
			s.logger.Warn().Str("error", err.Error()).Msg("schema reload after file change failed")
			return
		}
		if onReload != nil {
			onReload()
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("descriptor change detected")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn().Str("error", err.Error()).Msg("schema watcher error")
		}
	}
}
