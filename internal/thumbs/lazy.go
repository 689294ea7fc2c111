package thumbs

import (
	"fmt"
	"sync"
	"time"
)

// Target is a rendered grid node waiting for its thumbnail.
type Target interface {
	// ThumbSource is the media source to render, "" for nodes that take no
	// thumbnail (videos).
	ThumbSource() string
	// ThumbLoaded reports whether the node already shows its thumbnail.
	ThumbLoaded() bool
	// SetThumb hands the PNG bytes to the node. Called on the dispatcher goroutine.
	SetThumb(data []byte)
}

// Thumbnailer produces PNG bytes for a source.
type Thumbnailer interface {
	Thumbnail(source string) ([]byte, error)
}

// LazyLoader is the visibility notifier attached after each grid render. It
// waits a fixed delay, then generates thumbnails for the targets that still
// need one.
type LazyLoader struct {
	gen      Thumbnailer
	delay    time.Duration
	dispatch func(func())
	logger   LoggerFunc
	workers  int

	mu    sync.Mutex
	timer *time.Timer
	wg    sync.WaitGroup
}

// NewLazyLoader creates a loader. dispatch runs SetThumb calls on the UI
// goroutine; nil runs them directly.
func NewLazyLoader(gen Thumbnailer, delay time.Duration, dispatch func(func()), logger LoggerFunc) *LazyLoader {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &LazyLoader{
		gen:      gen,
		delay:    delay,
		dispatch: dispatch,
		logger:   logger,
		workers:  4,
	}
}

// Observe schedules a scan of targets after the configured delay. A new call
// before the delay elapses replaces the pending scan, since the older nodes
// are no longer on screen.
func (l *LazyLoader) Observe(targets []Target) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timer != nil && l.timer.Stop() {
		l.wg.Done()
	}
	l.wg.Add(1)
	l.timer = time.AfterFunc(l.delay, func() {
		defer l.wg.Done()
		l.scan(targets)
	})
}

// Wait blocks until every scheduled scan has finished.
func (l *LazyLoader) Wait() {
	l.wg.Wait()
}

func (l *LazyLoader) scan(targets []Target) {
	jobs := make(chan Target)
	var wg sync.WaitGroup
	for i := 0; i < l.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				l.load(t)
			}
		}()
	}
	for _, t := range targets {
		if t.ThumbSource() == "" || t.ThumbLoaded() {
			continue
		}
		jobs <- t
	}
	close(jobs)
	wg.Wait()
}

func (l *LazyLoader) load(t Target) {
	source := t.ThumbSource()
	data, err := l.gen.Thumbnail(source)
	if err != nil {
		l.logMessage("Thumbnail error for %s: %v", shorten(source), err)
		return
	}
	done := make(chan struct{})
	l.dispatch(func() {
		defer close(done)
		t.SetThumb(data)
	})
	<-done
}

func (l *LazyLoader) logMessage(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger(fmt.Sprintf(format, args...))
	}
}
