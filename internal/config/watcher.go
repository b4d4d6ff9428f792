package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher
	override func(*Config)

	changes chan *Config
	errs    chan error
}

// NewWatcher watches the directory containing path, since editors often
// replace files rather than writing them in place.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		fs:       fs,
		changes:  make(chan *Config, 1),
		errs:     make(chan error, 1),
	}, nil
}

// Override sets a function applied to every reloaded configuration before it
// is validated, so settings given on the command line survive a reload. It
// must be called before Run.
func (w *Watcher) Override(fn func(*Config)) { w.override = fn }

// Changes delivers each successfully reloaded configuration. Only the latest
// unread one is kept.
func (w *Watcher) Changes() <-chan *Config { return w.changes }

// Errors delivers reload and watch failures. Only the latest unread one is kept.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Run processes file events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			c, err := w.load()
			if err != nil {
				offer(w.errs, err)
				continue
			}
			offer(w.changes, c)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			offer(w.errs, err)
		}
	}
}

func (w *Watcher) load() (*Config, error) {
	c, err := LoadWithEnv(w.path)
	if err != nil || w.override == nil {
		return c, err
	}
	w.override(c)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// offer replaces any unread value in a one-slot channel with v.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
