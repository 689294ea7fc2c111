package gallery

import "errors"

var (
	// ErrIndexOutOfRange is returned by Open for a target outside the current view.
	// It points at a bug in the caller, not a runtime fault.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrViewerClosed is returned by operations that need an open viewer.
	ErrViewerClosed = errors.New("viewer is closed")
	// ErrEmptyView is returned when navigation finds nothing to show. The viewer
	// is closed when this happens.
	ErrEmptyView = errors.New("current view is empty")
)
