// Package watch runs a function whenever watched files change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// Watch calls fn each time the watched paths stop changing for the debounce
// duration. A path is either a file or a directory; files are watched
// through their directory so that editors replacing them are noticed.
// Calls to fn are sequential. Watch returns nil when ctx is done, or the
// first error returned by fn or the watcher.
func Watch(ctx context.Context, paths []string, debounce time.Duration, fn func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	match, err := add(w, paths)
	if err != nil {
		return err
	}
	changes := make(chan struct{}, 1)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return fmt.Errorf("watch: %w", err)
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) || !match(ev.Name) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			}
		}
	})
	g.Go(func() error {
		var (
			timer *time.Timer
			fire  <-chan time.Time
		)
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return nil
			case <-changes:
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				if err := fn(ctx); err != nil {
					return err
				}
			}
		}
	})
	return g.Wait()
}

// add registers paths on w and returns the matcher of relevant events.
func add(w *fsnotify.Watcher, paths []string) (func(string) bool, error) {
	var (
		dirs  = make(map[string]bool)
		files = make(map[string]bool)
	)
	for _, p := range paths {
		p = filepath.Clean(p)
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("watch: %w", err)
		}
		dir := p
		if info.IsDir() {
			dirs[p] = true
		} else {
			files[p] = true
			dir = filepath.Dir(p)
		}
		if err := w.Add(dir); err != nil {
			return nil, fmt.Errorf("watch: add %s: %w", dir, err)
		}
	}
	return func(name string) bool {
		name = filepath.Clean(name)
		return files[name] || dirs[filepath.Dir(name)]
	}, nil
}
