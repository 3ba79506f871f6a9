package store

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports writes to a store's database files (including the WAL).
// Notifications are coalesced: at most one is pending at a time.
type Watcher struct {
	fs      *fsnotify.Watcher
	base    string
	changes chan struct{}
	errs    chan error
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the directory that holds the database at path.
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w := &Watcher{
		fs:      fsw,
		base:    filepath.Base(path),
		changes: make(chan struct{}, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes is closed when the watcher stops.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Errors carries watcher failures; a full channel drops them.
func (w *Watcher) Errors() <-chan error { return w.errs }

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.changes)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				w.notify()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	// data.db, data.db-wal, data.db-shm
	return strings.HasPrefix(filepath.Base(ev.Name), w.base)
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
