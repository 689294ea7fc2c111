// Package ui  Shortcuts for keyboard actions
package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

func (a *App) buildKeyboardShortcuts() {
	// ctrl+q to quit application
	a.UI.MainWin.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyQ,
		Modifier: a.UI.mainModKey,
	}, func(_ fyne.Shortcut) { a.app.Quit() })

	// ctrl+o to add images, ctrl+shift+o to add videos
	a.UI.MainWin.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyO,
		Modifier: a.UI.mainModKey,
	}, func(_ fyne.Shortcut) { a.showAddImagesDialog() })
	a.UI.MainWin.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyO,
		Modifier: a.UI.mainModKey | fyne.KeyModifierShift,
	}, func(_ fyne.Shortcut) { a.showAddVideosDialog() })

	a.UI.MainWin.Canvas().SetOnTypedKey(a.onTypedKey)
}

// onTypedKey routes keys to the lightbox. Esc still closes dialogs while the
// lightbox is closed.
func (a *App) onTypedKey(key *fyne.KeyEvent) {
	handled, err := a.keys.Dispatch(key.Name)
	a.handleNavError(err)
	if handled {
		return
	}
	if key.Name == fyne.KeySpace {
		a.toggleSlideshow()
		return
	}
	if key.Name == fyne.KeyEscape {
		if len(a.UI.MainWin.Canvas().Overlays().List()) > 0 {
			a.UI.MainWin.Canvas().Overlays().Top().Hide()
		}
	}
}

var shortcutRows = [][2]string{
	{"Open item", "Click thumbnail"},
	{"Next item", "Arrow Right or swipe left"},
	{"Previous item", "Arrow Left or swipe right"},
	{"Close viewer", "Esc"},
	{"Play or pause slideshow", "Space"},
	{"Zoom", "Mouse wheel"},
	{"Add images", "Ctrl+O"},
	{"Add videos", "Ctrl+Shift+O"},
	{"Quit", "Ctrl+Q"},
}

func (a *App) showShortcuts() {
	win := a.app.NewWindow("Keyboard Shortcuts")
	table := widget.NewTable(
		func() (int, int) { return len(shortcutRows) + 1, 2 }, // +1 for header row
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			isHeader := id.Row == 0
			if isHeader {
				label.SetText([]string{"Action", "Shortcut"}[id.Col])
			} else {
				label.SetText(shortcutRows[id.Row-1][id.Col])
			}
			label.TextStyle.Bold = isHeader
		},
	)
	table.SetColumnWidth(0, 200)
	table.SetColumnWidth(1, 250)
	win.SetContent(table)
	win.Resize(fyne.NewSize(460, 320))
	win.Show()
}
