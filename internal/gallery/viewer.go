package gallery

import "fmt"

// Surface is the presentation the viewer draws into. The host decides how an
// image, a video or a display filter actually look.
type Surface interface {
	// ShowItem displays item, picking the image or video surface by its Kind,
	// tagged with displayFilter ("" for none).
	ShowItem(item MediaItem, displayFilter string)
	// ApplyFilter re-tags the displayed element without changing the media.
	ApplyFilter(displayFilter string)
	// Clear drops every displayed source so nothing keeps loading or playing.
	Clear()
	// LockScroll suppresses (true) or restores (false) background scrolling.
	LockScroll(locked bool)
}

// Viewer is the lightbox state machine. It starts Closed.
type Viewer struct {
	store         *Store
	surface       Surface
	open          bool
	position      int
	displayFilter string
	shown         MediaItem
	unsubscribe   func()

	// OnChange, when set, runs after every state change (open, close, move,
	// filter). Hosts use it to refresh counters and button states.
	OnChange func()
}

// NewViewer creates a closed viewer over store's current view.
func NewViewer(store *Store, surface Surface) *Viewer {
	v := &Viewer{store: store, surface: surface}
	v.unsubscribe = store.Subscribe(v.reconcile)
	return v
}

// Detach stops following store changes.
func (v *Viewer) Detach() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}

// IsOpen reports whether the lightbox is showing.
func (v *Viewer) IsOpen() bool {
	return v.open
}

// Position is the index into the current view. Only meaningful while open.
func (v *Viewer) Position() int {
	return v.position
}

// DisplayFilter is the active display filter name, "" when none.
func (v *Viewer) DisplayFilter() string {
	return v.displayFilter
}

// Current returns the displayed item. ok is false while closed.
func (v *Viewer) Current() (MediaItem, bool) {
	if !v.open {
		return MediaItem{}, false
	}
	return v.store.ViewItem(v.position)
}

// Open shows the item at index of the current view.
func (v *Viewer) Open(index int) error {
	n := v.store.ViewLen()
	if index < 0 || index >= n {
		return fmt.Errorf("open %d of %d: %w", index, n, ErrIndexOutOfRange)
	}
	wasOpen := v.open
	v.open = true
	v.position = index
	v.displayFilter = ""
	v.render()
	if !wasOpen {
		v.surface.LockScroll(true)
	}
	v.changed()
	return nil
}

// Close hides the lightbox. Closing a closed viewer does nothing.
func (v *Viewer) Close() {
	if !v.open {
		return
	}
	v.open = false
	v.displayFilter = ""
	v.shown = MediaItem{}
	v.surface.Clear()
	v.surface.LockScroll(false)
	v.changed()
}

// Next moves forward one item, wrapping to the start.
func (v *Viewer) Next() error {
	return v.step(1)
}

// Prev moves back one item, wrapping to the end.
func (v *Viewer) Prev() error {
	return v.step(-1)
}

func (v *Viewer) step(delta int) error {
	if !v.open {
		return ErrViewerClosed
	}
	n := v.store.ViewLen()
	if n == 0 {
		v.Close()
		return ErrEmptyView
	}
	v.position = ((v.position+delta)%n + n) % n
	v.render()
	v.changed()
	return nil
}

// SetDisplayFilter tags the displayed item with a display filter. The
// position and media are left alone.
func (v *Viewer) SetDisplayFilter(name string) error {
	if !v.open {
		return ErrViewerClosed
	}
	v.displayFilter = name
	v.surface.ApplyFilter(name)
	v.changed()
	return nil
}

func (v *Viewer) render() {
	item, ok := v.store.ViewItem(v.position)
	if !ok {
		return
	}
	v.shown = item
	v.surface.ShowItem(item, v.displayFilter)
}

// reconcile keeps the position valid when the view changes under an open viewer.
func (v *Viewer) reconcile() {
	if !v.open {
		return
	}
	n := v.store.ViewLen()
	if n == 0 {
		v.Close()
		return
	}
	if v.position >= n {
		v.position = n - 1
	}
	if item, _ := v.store.ViewItem(v.position); item != v.shown {
		v.render()
	}
	v.changed()
}

func (v *Viewer) changed() {
	if v.OnChange != nil {
		v.OnChange()
	}
}
