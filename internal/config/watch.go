package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/rewind/internal/applog"
)

// debounceDelay coalesces the event bursts editors produce per save.
const debounceDelay = 150 * time.Millisecond

// Watcher reloads the configuration when its file changes on disk.
type Watcher struct {
	mu       sync.Mutex
	path     string
	fsw      *fsnotify.Watcher
	log      *applog.Logger
	onChange func(Config)
	closeCh  chan struct{}
	wg       sync.WaitGroup
	closed   bool
}

// Watch starts watching path and calls onChange with each successfully
// reloaded configuration. Reload failures are logged and skipped; the
// previous configuration stays in effect.
func Watch(path string, log *applog.Logger, onChange func(Config)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}

	// Watch the directory: editors replace files by rename, which silently
	// drops a watch set on the file itself.
	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		path:     abs,
		fsw:      fsw,
		log:      log.WithComponent("config"),
		onChange: onChange,
		closeCh:  make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var reload <-chan time.Time
	for {
		select {
		case <-w.closeCh:
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
			reload = time.After(debounceDelay)

		case <-reload:
			reload = nil
			cfg, err := Load(w.path)
			if err != nil {
				w.log.Warn("reload failed, keeping previous config: %v", err)
				continue
			}
			w.log.Info("reloaded %s", w.path)
			w.onChange(cfg)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)
		}
	}
}

// Close stops the watcher and waits for its loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}
