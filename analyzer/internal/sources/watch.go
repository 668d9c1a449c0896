package sources

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the parent directories of the given report patterns and
// calls onChange each time a report file is written or created. Bursts of
// events (a test runner writing many files at once) are coalesced with the
// given debounce window. It runs until ctx is cancelled.
func Watch(ctx context.Context, patterns []string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range watchDirs(patterns) {
		if err := watcher.Add(dir); err != nil {
			slog.Warn("sources: cannot watch directory", "dir", dir, "err", err)
			continue
		}
		slog.Info("sources: watching for report changes", "dir", dir)
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Test runners write via create or rewrite-in-place; some use
			// rename for atomic output, which also surfaces as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !matchesAny(patterns, event.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("sources: watcher error", "err", err)
		}
	}
}

// watchDirs returns the deduplicated parent directories of the patterns.
func watchDirs(patterns []string) []string {
	seen := make(map[string]struct{})
	var dirs []string
	for _, p := range patterns {
		dir := filepath.Dir(p)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}

// matchesAny reports whether path matches at least one of the patterns.
func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
