package search

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of writes to the same session file (every
// assistant turn appends a line) into a single notification.
const watchDebounce = 300 * time.Millisecond

// ChangeEvent reports that the corpus under watch has changed on disk.
type ChangeEvent struct {
	Path string
}

// Watcher notifies of .jsonl writes under a root directory so the
// interactive driver can prompt a reload, without requiring the user to
// notice staleness themselves. It does not touch the message cache; a
// changed file is re-parsed on the next search because its mtime differs.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan ChangeEvent
}

// NewWatcher recursively watches root (and every subdirectory discovered
// at construction time) for .jsonl changes. New subdirectories created
// after construction are not picked up; the interactive driver's explicit
// "reload" command remains the reliable fallback regardless.
func NewWatcher(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := []string{root}
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{fs: fsw, events: make(chan ChangeEvent, 32)}
	go w.run()
	return w, nil
}

// Events returns the channel of debounced change notifications.
func (w *Watcher) Events() <-chan ChangeEvent {
	return w.events
}

// Close stops the underlying fsnotify watcher and closes the event channel.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) run() {
	defer close(w.events)

	var timer *time.Timer
	var lastPath string

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				if timer != nil {
					timer.Stop()
				}
				return
			}
			if !strings.HasSuffix(event.Name, ".jsonl") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			lastPath = event.Name
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case w.events <- ChangeEvent{Path: lastPath}:
				default:
				}
			})
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}
