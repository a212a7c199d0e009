package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"quickpanel/internal/workerutil"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	path     string
	onChange func(Config)
	fsw      *fsnotify.Watcher
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once
}

// Watch starts watching path and calls onChange with each successfully
// reloaded config. The parent directory is watched so that editors which
// replace the file by rename are picked up.
func Watch(ctx context.Context, path string, onChange func(Config)) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("onChange callback is required")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch config dir %s: %w", dir, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w := &Watcher{path: filepath.Clean(path), onChange: onChange, fsw: fsw, cancel: cancel}
	workerutil.RunWithPanicRecovery(watchCtx, "config-watcher", &w.wg, w.run, workerutil.RecoveryOptions{})
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		w.cancel()
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(reloadDebounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("[config] watcher error", "error", err)
		case <-timer.C:
			cfg, err := Load(w.path)
			if err != nil {
				slog.Warn("[config] reload failed, keeping current settings", "path", w.path, "error", err)
				continue
			}
			slog.Info("[config] reloaded", "path", w.path)
			w.onChange(cfg)
		}
	}
}
