package content

import (
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/positional-audio/event"
)

// Notifier receives reload notifications; mixer.Mixer satisfies it
type Notifier interface {
	Notify(ev event.Event)
}

// fileStamp identifies one revision of a file
type fileStamp struct {
	exists  bool
	modTime time.Time
	size    int64
}

// Watcher polls a source table and reports changes
// A changed, created or removed file produces EventSourcesInvalidated
type Watcher struct {
	path     string
	interval time.Duration
	notifier Notifier
	logger   *log.Logger

	last   fileStamp
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewWatcher creates a watcher; logger may be nil to use log.Default
func NewWatcher(path string, interval time.Duration, notifier Notifier, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.Default()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		path:     path,
		interval: interval,
		notifier: notifier,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Name implements service.Service
func (w *Watcher) Name() string {
	return "content"
}

// Dependencies implements service.Service
func (w *Watcher) Dependencies() []string {
	return nil
}

// Start records the current revision and begins polling
// Also announces EventSourcesReady so the first filter can load the table
func (w *Watcher) Start() error {
	w.last = w.stat()
	w.notifier.Notify(event.Event{Type: event.EventSourcesReady})

	w.wg.Add(1)
	go w.run()
	return nil
}

// Stop ends polling and waits for the goroutine to exit; safe to call twice
func (w *Watcher) Stop() error {
	w.once.Do(func() {
		close(w.stopCh)
	})
	w.wg.Wait()
	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll checks the file once and notifies on change; returns true if a notification was sent
func (w *Watcher) Poll() bool {
	cur := w.stat()
	if cur == w.last {
		return false
	}
	w.last = cur

	if cur.exists {
		w.logger.Printf("Source table %s changed, invalidating", w.path)
	} else {
		w.logger.Printf("Source table %s removed, invalidating", w.path)
	}
	w.notifier.Notify(event.Event{Type: event.EventSourcesInvalidated})
	return true
}

func (w *Watcher) stat() fileStamp {
	info, err := os.Stat(w.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			w.logger.Printf("Failed to stat %s: %v", w.path, err)
		}
		return fileStamp{}
	}
	return fileStamp{exists: true, modTime: info.ModTime(), size: info.Size()}
}
