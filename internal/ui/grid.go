package ui

import (
	"fmt"

	"fyne.io/fyne/v2"

	"fygallery/internal/gallery"
)

// refreshGrid rebuilds the tiles for the current view. It runs after every
// store change; the lazy loader is re-armed through the grid's AfterRender hook.
func (a *App) refreshGrid() {
	view := a.store.Current()
	nodes := a.grid.Render(view, a.openViewer)

	objects := make([]fyne.CanvasObject, len(nodes))
	for i, n := range nodes {
		objects[i] = n
	}
	a.UI.gridBox.Objects = objects
	a.UI.gridBox.Refresh()

	if len(view) == 0 {
		a.UI.emptyLabel.Show()
	} else {
		a.UI.emptyLabel.Hide()
	}
	a.refreshFilterOptions()
	a.updateStatusBar()
}

// filterOptions lists the filter control values: all, each category in
// first-seen order, then videos when there are any.
func (a *App) filterOptions() []string {
	options := []string{gallery.SelectorAll}
	options = append(options, a.store.Categories()...)
	for _, item := range a.store.Items() {
		if item.Kind == gallery.KindVideo {
			options = append(options, gallery.SelectorVideos)
			break
		}
	}
	return options
}

// refreshFilterOptions updates the choices without firing OnChanged.
func (a *App) refreshFilterOptions() {
	if a.UI.filterSelect == nil {
		return
	}
	a.UI.filterSelect.Options = a.filterOptions()
	a.UI.filterSelect.Selected = a.store.Selector().Value()
	a.UI.filterSelect.Refresh()
}

// applyFilter is the change handler of the filter control.
func (a *App) applyFilter(value string) {
	a.releaseFocus()
	sel := gallery.ParseSelector(value)
	if sel == a.store.Selector() {
		return
	}
	view := a.store.Filter(sel)
	a.addLogMessage(fmt.Sprintf("Filter %s: %d item(s)", sel.Value(), len(view)))
}
