package keymap

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watcher signals when keymap files change.
//
// It only signals; rebuilding the bindings is left to the receiver so the
// rebuild runs on the same goroutine as the dispatcher.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	// files are watched individually; dirs are watched for any keymap file.
	files     map[string]bool
	dirs      map[string]bool
	parents   map[string]bool
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
	logger    *zap.Logger
}

// NewWatcher creates a watcher for the given keymap files and directories.
func NewWatcher(paths []string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Watcher{
		fsWatcher: fsw,
		files:     make(map[string]bool),
		dirs:      make(map[string]bool),
		parents:   make(map[string]bool),
		debounce:  debounce,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
		logger:    logger,
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if _, err := FormatFromPath(abs); err == nil {
			// Watch the directory: editors replace files by renaming.
			w.files[abs] = true
			w.parents[filepath.Dir(abs)] = true
		} else {
			w.dirs[abs] = true
		}
	}
	return w, nil
}

// Start begins watching. The returned channel receives a signal after
// keymap files change.
func (w *Watcher) Start() (<-chan struct{}, error) {
	for _, set := range []map[string]bool{w.dirs, w.parents} {
		for dir := range set {
			if err := w.fsWatcher.Add(dir); err != nil {
				return nil, fmt.Errorf("watching directory %s: %w", dir, err)
			}
		}
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		var fire <-chan time.Time
		if timer != nil {
			fire = timer.C
		}

		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-fire:
			if pending {
				// Drop if a signal is already waiting.
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("keymap watcher error", zap.Error(err))

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent checks if the event should trigger a reload.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}

	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	if w.files[name] {
		return true
	}
	if _, err := FormatFromPath(name); err != nil {
		return false
	}
	return w.dirs[filepath.Dir(name)]
}
