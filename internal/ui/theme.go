package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// compactTheme wraps an existing theme and shrinks the padding so more grid
// tiles fit on screen.
type compactTheme struct {
	fyne.Theme
	padding float32
}

var _ fyne.Theme = (*compactTheme)(nil)

// Size overrides the padding and inner padding, everything else comes from the
// wrapped theme.
func (t *compactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return t.padding
	case theme.SizeNameInnerPadding:
		return t.padding * 2
	}
	return t.Theme.Size(name)
}

// NewCompactTheme returns base with the given padding.
func NewCompactTheme(base fyne.Theme, padding float32) fyne.Theme {
	return &compactTheme{Theme: base, padding: padding}
}
