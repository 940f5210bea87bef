// Package watch re-triggers analysis when the input file changes on disk.
package watch

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events a single save usually produces.
const DefaultDebounce = 100 * time.Millisecond

// FileChangeType indicates what type of change occurred.
type FileChangeType string

const (
	FileChangeCreated  FileChangeType = "created"
	FileChangeModified FileChangeType = "modified"
)

// FileChange represents a change to the watched file.
type FileChange struct {
	Type FileChangeType
	Path string
}

// Subscriber receives change notifications.
type Subscriber interface {
	OnFileChange(change FileChange)
}

// FileWatcher watches a single file and notifies subscribers when it is written.
// The parent directory is watched so editors that save by rename are seen too.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	path        string
	debounce    time.Duration
	mu          sync.RWMutex
	subscribers []Subscriber
	timer       *time.Timer
	timerMu     sync.Mutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// NewFileWatcher creates a watcher for the file at path.
func NewFileWatcher(path string, debounce time.Duration) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher:  watcher,
		path:     abs,
		debounce: debounce,
		stopCh:   make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (fw *FileWatcher) Path() string {
	return fw.path
}

// Subscribe adds a subscriber to receive change notifications.
func (fw *FileWatcher) Subscribe(sub Subscriber) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.subscribers = append(fw.subscribers, sub)
}

// Start begins watching.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	if fw.stopped {
		fw.mu.Unlock()
		return fmt.Errorf("file watcher cannot be restarted after stop")
	}
	fw.running = true
	fw.mu.Unlock()

	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return err
	}

	go fw.run()
	return nil
}

// Stop stops watching for changes.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if !fw.running || fw.stopped {
		fw.mu.Unlock()
		return nil
	}
	fw.running = false
	fw.stopped = true
	fw.mu.Unlock()

	// Cancel a pending debounce timer so it can't fire after stop
	fw.timerMu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
		fw.timer = nil
	}
	fw.timerMu.Unlock()

	close(fw.stopCh)
	return fw.watcher.Close()
}

func (fw *FileWatcher) run() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-fw.stopCh:
			return
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != fw.path {
		return
	}
	change, ok := classifyChange(event)
	if !ok {
		return
	}
	change.Path = fw.path

	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, func() {
		fw.emitChange(change)
	})
}

func (fw *FileWatcher) emitChange(change FileChange) {
	// Check if watcher was stopped (debounce timer may fire after Stop)
	fw.mu.RLock()
	if fw.stopped {
		fw.mu.RUnlock()
		return
	}
	subs := make([]Subscriber, len(fw.subscribers))
	copy(subs, fw.subscribers)
	fw.mu.RUnlock()

	for _, sub := range subs {
		sub.OnFileChange(change)
	}
}

// classifyChange maps an fsnotify event to a change worth re-running for.
// Removals are ignored; a rename-based save shows up as a later create.
func classifyChange(event fsnotify.Event) (FileChange, bool) {
	switch {
	case event.Op&fsnotify.Create != 0:
		return FileChange{Type: FileChangeCreated}, true
	case event.Op&fsnotify.Write != 0:
		return FileChange{Type: FileChangeModified}, true
	}
	return FileChange{}, false
}
