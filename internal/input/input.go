// Package input turns key presses and horizontal swipes into viewer navigation.
package input

import (
	"fyne.io/fyne/v2"
)

// DefaultSwipeThreshold is the horizontal distance, in pixels, a swipe has to
// cover before it counts.
const DefaultSwipeThreshold = 50

// Navigator is the part of the viewer that input drives.
type Navigator interface {
	IsOpen() bool
	Close()
	Next() error
	Prev() error
}

// KeyDispatcher maps keys to viewer actions. It does nothing while the viewer
// is closed.
type KeyDispatcher struct {
	nav Navigator
}

// NewKeyDispatcher creates a dispatcher for nav.
func NewKeyDispatcher(nav Navigator) *KeyDispatcher {
	return &KeyDispatcher{nav: nav}
}

// Dispatch handles key and reports whether it was consumed.
func (d *KeyDispatcher) Dispatch(key fyne.KeyName) (bool, error) {
	if !d.nav.IsOpen() {
		return false, nil
	}
	switch key {
	case fyne.KeyEscape:
		d.nav.Close()
		return true, nil
	case fyne.KeyLeft:
		return true, d.nav.Prev()
	case fyne.KeyRight:
		return true, d.nav.Next()
	default:
		return false, nil
	}
}

// Swipe is the outcome of a finished gesture.
type Swipe int

const (
	// SwipeNone means the gesture was too short or the viewer was closed.
	SwipeNone Swipe = iota
	// SwipeLeft moves to the next item.
	SwipeLeft
	// SwipeRight moves to the previous item.
	SwipeRight
)

func (s Swipe) String() string {
	switch s {
	case SwipeLeft:
		return "left"
	case SwipeRight:
		return "right"
	default:
		return "none"
	}
}

// SwipeTracker records the start and end X of a touch or drag gesture.
type SwipeTracker struct {
	nav       Navigator
	threshold float32
	startX    float32
	tracking  bool
}

// NewSwipeTracker creates a tracker. A non-positive threshold falls back to
// DefaultSwipeThreshold.
func NewSwipeTracker(nav Navigator, threshold float32) *SwipeTracker {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &SwipeTracker{nav: nav, threshold: threshold}
}

// Threshold returns the configured distance.
func (t *SwipeTracker) Threshold() float32 {
	return t.threshold
}

// Start records where the gesture began. A second Start before End restarts it.
func (t *SwipeTracker) Start(x float32) {
	t.startX = x
	t.tracking = true
}

// Tracking reports whether a gesture is in progress.
func (t *SwipeTracker) Tracking() bool {
	return t.tracking
}

// End finishes the gesture at x and navigates when the viewer is open and the
// distance exceeds the threshold.
func (t *SwipeTracker) End(x float32) (Swipe, error) {
	if !t.tracking {
		return SwipeNone, nil
	}
	t.tracking = false
	if !t.nav.IsOpen() {
		return SwipeNone, nil
	}
	switch {
	case x < t.startX-t.threshold:
		return SwipeLeft, t.nav.Next()
	case x > t.startX+t.threshold:
		return SwipeRight, t.nav.Prev()
	default:
		return SwipeNone, nil
	}
}
