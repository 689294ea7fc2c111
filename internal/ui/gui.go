package ui

import (
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fygallery/internal/gallery"
	"fygallery/internal/upload"
)

// UI holds the widgets of the main window.
type UI struct {
	MainWin    fyne.Window
	mainModKey fyne.KeyModifier

	toolBar      *widget.Toolbar
	filterSelect *widget.Select
	gridBox      *fyne.Container
	gridScroll   *container.Scroll
	emptyLabel   *widget.Label

	statusLabel      *widget.Label
	statusLogLabel   *widget.Label
	statusLogUpBtn   *widget.Button
	statusLogDownBtn *widget.Button
}

func (a *App) buildStatusBar() *fyne.Container {
	a.UI.statusLabel = widget.NewLabel("")
	a.UI.statusLogLabel = widget.NewLabel("")
	a.UI.statusLogLabel.Truncation = fyne.TextTruncateEllipsis
	a.UI.statusLogUpBtn = widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() {
		a.logUIManager.ShowPreviousLogMessage()
	})
	a.UI.statusLogDownBtn = widget.NewButtonWithIcon("", theme.MoveDownIcon(), func() {
		a.logUIManager.ShowNextLogMessage()
	})
	a.logUIManager = NewLogUIManager(a.UI.statusLogLabel, a.UI.statusLogUpBtn, a.UI.statusLogDownBtn, a.cfg.LogCapacity())
	a.logUIManager.UpdateLogDisplay()

	return container.NewVBox(
		widget.NewSeparator(),
		container.NewBorder(nil, nil,
			a.UI.statusLabel,
			container.NewHBox(a.UI.statusLogUpBtn, a.UI.statusLogDownBtn),
			a.UI.statusLogLabel,
		),
	)
}

func (a *App) buildToolbar() *widget.Toolbar {
	a.UI.toolBar = widget.NewToolbar(
		widget.NewToolbarAction(theme.FileImageIcon(), a.showAddImagesDialog),
		widget.NewToolbarAction(theme.FileVideoIcon(), a.showAddVideosDialog),
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.showAddFolderDialog),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			a.applyFilter(gallery.SelectorAll)
		}),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.ColorPaletteIcon(), a.toggleTheme),
		widget.NewToolbarAction(theme.HelpIcon(), a.showShortcuts),
	)
	return a.UI.toolBar
}

func (a *App) buildMainUI() fyne.CanvasObject {
	a.UI.MainWin.SetMaster()
	if runtime.GOOS == "darwin" {
		a.UI.mainModKey = fyne.KeyModifierSuper
	} else {
		a.UI.mainModKey = fyne.KeyModifierControl
	}

	toolbar := a.buildToolbar()
	status := a.buildStatusBar()

	a.UI.filterSelect = widget.NewSelect([]string{gallery.SelectorAll}, a.applyFilter)
	a.UI.filterSelect.Selected = gallery.SelectorAll
	header := container.NewBorder(nil, nil, widget.NewLabel("Filter:"), nil, a.UI.filterSelect)

	size := float32(a.cfg.ThumbnailPixels())
	a.UI.gridBox = container.NewGridWrap(fyne.NewSize(size, size))
	a.UI.emptyLabel = widget.NewLabel("No items match this filter.")
	a.UI.emptyLabel.Alignment = fyne.TextAlignCenter
	a.UI.emptyLabel.Hide()
	a.UI.gridScroll = container.NewVScroll(container.NewVBox(a.UI.emptyLabel, a.UI.gridBox))

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Add Images...", a.showAddImagesDialog),
			fyne.NewMenuItem("Add Videos...", a.showAddVideosDialog),
			fyne.NewMenuItem("Add Folder...", a.showAddFolderDialog),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Clear Thumbnail Cache", a.purgeThumbCache),
		),
		fyne.NewMenu("View",
			fyne.NewMenuItem("Show All", func() { a.applyFilter(gallery.SelectorAll) }),
			fyne.NewMenuItem("Next Item", func() { a.handleNavError(a.viewer.Next()) }),
			fyne.NewMenuItem("Previous Item", func() { a.handleNavError(a.viewer.Prev()) }),
			fyne.NewMenuItem("Close Viewer", func() { a.viewer.Close() }),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Toggle Theme", a.toggleTheme),
		),
		fyne.NewMenu("Help",
			fyne.NewMenuItem("Keyboard Shortcuts", a.showShortcuts),
			fyne.NewMenuItem("About", a.showAbout),
		),
	)
	a.UI.MainWin.SetMainMenu(mainMenu)
	a.buildKeyboardShortcuts()

	page := container.NewBorder(
		container.NewVBox(toolbar, header),
		status,
		nil,
		nil,
		a.UI.gridScroll,
	)
	return container.NewStack(page, a.lightbox.root)
}

func (a *App) showAddImagesDialog() { a.showAddMediaDialog("image/*") }

func (a *App) showAddVideosDialog() { a.showAddMediaDialog("video/*") }

// showAddMediaDialog lets the user pick a file to append. mimeType is only the
// picker's hint; the kind still comes from the chosen file.
func (a *App) showAddMediaDialog(mimeType string) {
	a.player.Pause(true)
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		defer a.player.ResumeAfterOperation()
		if err != nil {
			dialog.ShowError(err, a.UI.MainWin)
			return
		}
		if rc == nil {
			return
		}
		a.uploadFiles([]upload.File{newURIFile(rc)})
	}, a.UI.MainWin)
	fd.SetFilter(storage.NewMimeTypeFileFilter([]string{mimeType}))
	fd.Show()
}

// showAddFolderDialog appends every media file below the chosen folder.
func (a *App) showAddFolderDialog() {
	a.player.Pause(true)
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		defer a.player.ResumeAfterOperation()
		if err != nil {
			dialog.ShowError(err, a.UI.MainWin)
			return
		}
		if dir == nil {
			return
		}
		a.addLogMessage("Scanning " + dir.Path())
		a.loadDirectory(dir.Path(), nil)
	}, a.UI.MainWin)
}
