package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher regenerates the icon set whenever the source image changes
type Watcher struct {
	sourcePath string
	debounce   time.Duration
	regenerate func() error
	watcher    *fsnotify.Watcher
	events     chan Event

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool

	// serialises regenerate calls
	regenMu sync.Mutex
}

// Event represents a change of the source image
type Event struct {
	Type     EventType
	FilePath string
	// Err is the regeneration error, nil on success or for EventDeleted
	Err error
}

// EventType represents the type of file event
type EventType int

const (
	EventCreated EventType = iota
	EventModified
	EventDeleted
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventModified:
		return "modified"
	case EventDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// NewWatcher creates a watcher for sourcePath. regenerate runs once per
// burst of changes, after the file has been quiet for debounce.
func NewWatcher(sourcePath string, debounce time.Duration, regenerate func() error) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		sourcePath: filepath.Clean(sourcePath),
		debounce:   debounce,
		regenerate: regenerate,
		watcher:    fsWatcher,
		events:     make(chan Event, 100),
	}, nil
}

// Start begins monitoring the source image.
// The parent directory is watched because editors often save by
// replacing the file, which drops a watch on the file itself.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.sourcePath)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch folder %s: %w", dir, err)
	}
	log.Printf("Watching %s for changes", w.sourcePath)

	go w.processEvents()

	return nil
}

// processEvents handles fsnotify events for the source file
func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.sourcePath {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				w.schedule(EventCreated)
			case event.Op&fsnotify.Write == fsnotify.Write:
				w.schedule(EventModified)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.cancelPending()
				log.Printf("⚠️  Source removed: %s (waiting for it to come back)", event.Name)
				w.publish(Event{Type: EventDeleted, FilePath: event.Name})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// schedule (re)arms the debounce timer
func (w *Watcher) schedule(eventType EventType) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.handleChange(eventType)
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// handleChange regenerates the icons after a settled change
func (w *Watcher) handleChange(eventType EventType) {
	w.regenMu.Lock()
	defer w.regenMu.Unlock()

	log.Printf("📄 Source %s: %s", eventType, w.sourcePath)

	err := w.regenerate()
	if err != nil {
		log.Printf("❌ Failed to regenerate icons: %v", err)
	} else {
		log.Printf("✅ Icons regenerated from %s", w.sourcePath)
	}

	w.publish(Event{Type: eventType, FilePath: w.sourcePath, Err: err})
}

// publish sends an event without blocking the watcher
func (w *Watcher) publish(event Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	select {
	case w.events <- event:
	default:
		log.Printf("Event channel full, dropping %s event", event.Type)
	}
}

// Events returns the event channel
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		if w.timer != nil {
			w.timer.Stop()
		}
		close(w.events)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
