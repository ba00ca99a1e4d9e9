// Package watch reports debounced changes to a fixed set of files.
package watch

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before its change is
// reported. Editors often write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // File written or created
	ChangeRemoved                    // File no longer exists
)

// String returns a lowercase name for the kind.
func (k ChangeKind) String() string {
	if k == ChangeRemoved {
		return "removed"
	}
	return "modified"
}

// Change is a settled change to one watched file.
type Change struct {
	Kind ChangeKind
	File string // Absolute path
}

// Watcher monitors files for changes using fsnotify. It watches the parent
// directories rather than the files themselves so that editors which save by
// renaming a temp file over the original are still seen.
type Watcher struct {
	Changes <-chan Change // Read-only external channel

	files    map[string]bool
	dirs     []string
	debounce time.Duration
	changes  chan Change
	done     chan struct{}
	watcher  *fsnotify.Watcher
}

// New creates a watcher for the given files. Paths are made absolute.
func New(files ...string) (*Watcher, error) {
	set := make(map[string]bool, len(files))
	seenDir := make(map[string]bool)
	var dirs []string
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		set[abs] = true
		if dir := filepath.Dir(abs); !seenDir[dir] {
			seenDir[dir] = true
			dirs = append(dirs, dir)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Changes:  ch,
		files:    set,
		dirs:     dirs,
		debounce: DefaultDebounce,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching. On error the underlying watcher is closed and w
// must not be used again.
func (w *Watcher) Start() error {
	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.watcher.Close()
			return err
		}
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: track last event time per file.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			name := filepath.Clean(event.Name)
			if !w.files[name] {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[name] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= w.debounce {
					w.emit(file)
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore watch errors; they're non-fatal.
		}
	}
}

func (w *Watcher) emit(file string) {
	kind := ChangeModified
	if _, err := os.Stat(file); os.IsNotExist(err) {
		kind = ChangeRemoved
	}
	select {
	case w.changes <- Change{Kind: kind, File: file}:
	case <-time.After(time.Second):
		// Consumer is busy; drop rather than stall the event loop. The next
		// write produces a fresh change.
	}
}
