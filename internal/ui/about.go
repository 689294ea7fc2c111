package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
)

type About struct {
	title     string
	parent    fyne.Window
	container *fyne.Container
	d         dialog.Dialog
}

// NewAbout builds the about box: the app icon above the given lines of text.
func NewAbout(parent fyne.Window, title string, image fyne.Resource, lines ...string) *About {
	a := &About{
		title:  title,
		parent: parent,
	}

	img := canvas.NewImageFromResource(image)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(96, 96))

	vbox := container.NewVBox(img)
	for _, line := range lines {
		l := widget.NewLabel(line)
		l.Alignment = fyne.TextAlignCenter
		vbox.Add(l)
	}

	ok := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButton("OK", func() { a.Hide() }),
		layout.NewSpacer(),
	)

	a.container = container.NewBorder(nil, ok, nil, nil, vbox)

	return a
}

func (a *About) Hide() {
	if a.d != nil {
		a.d.Hide()
	}
}

func (a *About) Show() {
	a.d = dialog.NewCustomWithoutButtons(a.title, a.container, a.parent)
	a.d.Show()
}

func (a *App) showAbout() {
	lines := []string{
		"A media gallery with a filterable grid and a lightbox viewer.",
		fmt.Sprintf("%s items in %s categories", humanize.Comma(int64(a.store.Len())), humanize.Comma(int64(len(a.store.Categories())))),
	}
	if a.cache != nil {
		lines = append(lines, fmt.Sprintf("%s thumbnails cached on disk", humanize.Comma(int64(a.cache.Len()))))
	}
	NewAbout(a.UI.MainWin, "About FyGallery", theme.MediaPhotoIcon(), lines...).Show()
}
