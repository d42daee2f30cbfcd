package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/contactus/internal/log"
)

// debounceDelay lets bursts of editor writes settle before reloading.
const debounceDelay = 250 * time.Millisecond

// Watch calls onChange after the file at path is written, created or
// replaced, until ctx is done. The parent directory is watched because most
// editors save by renaming a temp file over the original.
func Watch(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return fmt.Errorf("resolving config path: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watching %q: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer func() { _ = w.Close() }()

		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				log.Debug(log.CatConfig, "config file changed", "op", ev.Op.String())
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, onChange)

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.ErrorErr(log.CatConfig, "config watcher failed", err)

			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
