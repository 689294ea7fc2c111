package gallery

import "fmt"

const (
	// SelectorAll is the UI value that shows every item.
	SelectorAll = "all"
	// SelectorVideos is the UI value that shows only videos.
	SelectorVideos = "videos"
)

type selectorMode int

const (
	modeAll selectorMode = iota
	modeKind
	modeCategory
)

// Selector picks the items that make up a filtered view.
type Selector struct {
	mode     selectorMode
	kind     Kind
	category string
}

// All selects every item.
func All() Selector {
	return Selector{mode: modeAll}
}

// ByKind selects items of the given kind.
func ByKind(k Kind) Selector {
	return Selector{mode: modeKind, kind: k}
}

// ByCategory selects items whose category equals name.
func ByCategory(name string) Selector {
	return Selector{mode: modeCategory, category: name}
}

// ParseSelector maps a filter control value to a Selector: "all", "videos" or a
// category name.
func ParseSelector(value string) Selector {
	switch value {
	case "", SelectorAll:
		return All()
	case SelectorVideos:
		return ByKind(KindVideo)
	default:
		return ByCategory(value)
	}
}

// Match reports whether item belongs to the selection.
func (s Selector) Match(item MediaItem) bool {
	switch s.mode {
	case modeKind:
		return item.Kind == s.kind
	case modeCategory:
		return item.Category == s.category
	default:
		return true
	}
}

// IsAll reports whether the selector is the identity selection.
func (s Selector) IsAll() bool {
	return s.mode == modeAll
}

// Value returns the filter control value that ParseSelector maps back to s.
func (s Selector) Value() string {
	switch s.mode {
	case modeKind:
		if s.kind == KindVideo {
			return SelectorVideos
		}
		return s.kind.String()
	case modeCategory:
		return s.category
	default:
		return SelectorAll
	}
}

func (s Selector) String() string {
	switch s.mode {
	case modeKind:
		return fmt.Sprintf("kind=%s", s.kind)
	case modeCategory:
		return fmt.Sprintf("category=%s", s.category)
	default:
		return SelectorAll
	}
}
