package ui

import (
	"fmt"
	"image/color"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fygallery/internal/gallery"
	"fygallery/internal/thumbs"
)

// thumbTile is one grid cell: a thumbnail with the title and caption laid over
// its lower edge. Tapping it opens the lightbox on the tile's view index.
type thumbTile struct {
	widget.BaseWidget
	tile     gallery.Tile
	image    *canvas.Image
	title    *canvas.Text
	caption  *canvas.Text
	shade    *canvas.Rectangle
	onTapped func()
	loaded   atomic.Bool
}

var _ thumbs.Target = (*thumbTile)(nil)
var _ fyne.Tappable = (*thumbTile)(nil)

// newThumbTile creates the node for tile. Videos keep the video icon, images
// show a placeholder until the lazy loader delivers the thumbnail.
func newThumbTile(tile gallery.Tile, size float32, onTapped func()) *thumbTile {
	placeholder := theme.FileImageIcon()
	if tile.Kind == gallery.KindVideo {
		placeholder = theme.FileVideoIcon()
	}
	t := &thumbTile{
		tile:     tile,
		image:    canvas.NewImageFromResource(placeholder),
		title:    canvas.NewText(tile.Title, color.White),
		caption:  canvas.NewText(tile.Caption(), color.NRGBA{R: 220, G: 220, B: 220, A: 255}),
		shade:    canvas.NewRectangle(color.NRGBA{A: 150}),
		onTapped: onTapped,
	}
	t.image.FillMode = canvas.ImageFillContain
	t.image.SetMinSize(fyne.NewSize(size, size))
	t.title.TextStyle = fyne.TextStyle{Bold: true}
	t.caption.TextSize = theme.Size(theme.SizeNameCaptionText)
	t.ExtendBaseWidget(t)
	return t
}

func (t *thumbTile) CreateRenderer() fyne.WidgetRenderer {
	overlay := container.NewStack(t.shade, container.NewVBox(t.title, t.caption))
	return widget.NewSimpleRenderer(container.NewStack(
		t.image,
		container.NewVBox(layout.NewSpacer(), overlay),
	))
}

// Tapped is called when the tile is clicked.
func (t *thumbTile) Tapped(_ *fyne.PointEvent) {
	if t.onTapped != nil {
		t.onTapped()
	}
}

// ThumbSource implements thumbs.Target. Videos take no thumbnail.
func (t *thumbTile) ThumbSource() string {
	if t.tile.Kind == gallery.KindVideo {
		return ""
	}
	return t.tile.Source
}

// ThumbLoaded implements thumbs.Target. Safe from any goroutine.
func (t *thumbTile) ThumbLoaded() bool {
	return t.loaded.Load()
}

// SetThumb implements thumbs.Target and runs on the UI goroutine.
func (t *thumbTile) SetThumb(data []byte) {
	t.image.Resource = fyne.NewStaticResource(fmt.Sprintf("thumb-%d.png", t.tile.Index), data)
	t.loaded.Store(true)
	canvas.Refresh(t.image)
}
