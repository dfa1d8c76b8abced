package app

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is the debounce window for watcher events.
const WatchDebounce = 600 * time.Millisecond

// Watcher surfaces git metadata directory changes as refresh triggers.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan struct{}
	done    chan struct{}
	logf    func(string, ...any)
}

// NewWatcher watches the metadata directory plus its refs and logs
// subtrees. Missing subtrees are skipped; the directory itself must be
// watchable.
func NewWatcher(gitDir string, logf func(string, ...any)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(gitDir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		logf:    logf,
	}
	for _, sub := range []string{"refs", filepath.Join("refs", "heads"), "logs", filepath.Join("logs", "refs")} {
		if err := fsw.Add(filepath.Join(gitDir, sub)); err != nil {
			w.debugf("watch: skipping %s: %v", sub, err)
		}
	}

	go w.run()
	return w, nil
}

func (w *Watcher) debugf(format string, args ...any) {
	if w.logf != nil {
		w.logf(format, args...)
	}
}

// Events returns the coalesced refresh trigger channel.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher.
func (w *Watcher) Close() {
	close(w.done)
	_ = w.watcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevantEvent(ev) {
				continue
			}
			w.debugf("watch: %s", ev)
			select {
			case w.events <- struct{}{}:
			default:
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

// relevantEvent filters out noise such as git's lock file churn, which
// fires on every status invocation we trigger ourselves.
func relevantEvent(ev fsnotify.Event) bool {
	name := filepath.Base(ev.Name)
	if strings.HasSuffix(name, ".lock") || name == ".watchman-cookie" {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
