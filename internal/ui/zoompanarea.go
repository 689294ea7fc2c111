package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"fygallery/internal/effects"
	"fygallery/internal/input"
)

const (
	defaultMinZoom        float32 = 0.1
	defaultMaxZoom        float32 = 10.0
	defaultZoomScrollStep float32 = 0.1
)

// ZoomPanArea shows the lightbox image with a display filter, mouse wheel zoom
// and drag. At fit zoom a horizontal drag is a swipe; once zoomed in a drag pans.
type ZoomPanArea struct {
	widget.BaseWidget

	originalImg image.Image
	filtered    image.Image
	filterName  string
	raster      *canvas.Raster

	zoomFactor float32
	fitZoom    float32
	userZoomed bool
	panOffset  fyne.Position

	minZoom float32
	maxZoom float32

	swipe    swipeDrag
	dragging bool
	panning  bool

	// OnSwipeError receives navigation errors raised by a swipe.
	OnSwipeError func(error)
}

// NewZoomPanArea creates an empty area. swipe may be nil to disable swipes.
func NewZoomPanArea(swipe *input.SwipeTracker) *ZoomPanArea {
	zpa := &ZoomPanArea{
		zoomFactor: 1.0,
		fitZoom:    1.0,
		minZoom:    defaultMinZoom,
		maxZoom:    defaultMaxZoom,
		swipe:      swipeDrag{tracker: swipe},
	}
	zpa.raster = canvas.NewRaster(zpa.draw)
	zpa.ExtendBaseWidget(zpa)
	return zpa
}

// SetSwipeTracker routes horizontal drags at fit zoom to t.
func (zpa *ZoomPanArea) SetSwipeTracker(t *input.SwipeTracker) {
	zpa.swipe.tracker = t
}

// SetImage replaces the image, keeping the current display filter.
func (zpa *ZoomPanArea) SetImage(img image.Image) {
	zpa.originalImg = img
	zpa.filtered = effects.Apply(zpa.filterName, img)
	zpa.userZoomed = false
	zpa.Reset()
}

// SetFilter applies a display filter to the current image. "" removes it.
func (zpa *ZoomPanArea) SetFilter(name string) {
	zpa.filterName = name
	zpa.filtered = effects.Apply(name, zpa.originalImg)
	zpa.Refresh()
}

// Filter returns the active display filter name.
func (zpa *ZoomPanArea) Filter() string {
	return zpa.filterName
}

// Reset fits the image into the view and centers it.
func (zpa *ZoomPanArea) Reset() {
	zpa.panOffset = fyne.Position{}
	zpa.userZoomed = false

	size := zpa.Size()
	if zpa.originalImg != nil && size.Width > 0 && size.Height > 0 {
		imgBounds := zpa.originalImg.Bounds()
		imgW := float32(imgBounds.Dx())
		imgH := float32(imgBounds.Dy())

		zoomW := size.Width / imgW
		zoomH := size.Height / imgH
		zpa.zoomFactor = zoomW
		if zoomH < zoomW {
			zpa.zoomFactor = zoomH
		}
		zpa.fitZoom = zpa.zoomFactor

		zpa.panOffset.X = (size.Width - imgW*zpa.zoomFactor) / 2
		zpa.panOffset.Y = (size.Height - imgH*zpa.zoomFactor) / 2
	} else {
		zpa.zoomFactor = 1.0
		zpa.fitZoom = 1.0
	}
	zpa.Refresh()
}

// draw maps every destination pixel back through pan and zoom to the source.
func (zpa *ZoomPanArea) draw(w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	src := zpa.filtered
	if src == nil || w <= 0 || h <= 0 {
		return dst
	}
	srcBounds := src.Bounds()
	invZoomFactor := float32(1.0) / zpa.zoomFactor

	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			sx := (float32(dx)-zpa.panOffset.X)*invZoomFactor + float32(srcBounds.Min.X)
			sy := (float32(dy)-zpa.panOffset.Y)*invZoomFactor + float32(srcBounds.Min.Y)
			if sx >= float32(srcBounds.Min.X) && sx < float32(srcBounds.Max.X) &&
				sy >= float32(srcBounds.Min.Y) && sy < float32(srcBounds.Max.Y) {
				dst.Set(dx, dy, src.At(int(sx), int(sy)))
			}
		}
	}
	return dst
}

func (zpa *ZoomPanArea) CreateRenderer() fyne.WidgetRenderer {
	return &zoomPanAreaRenderer{zpa: zpa}
}

// Scrolled zooms towards the center of the view.
func (zpa *ZoomPanArea) Scrolled(ev *fyne.ScrollEvent) {
	if zpa.originalImg == nil {
		return
	}
	viewWidth, viewHeight := zpa.Size().Width, zpa.Size().Height
	centerX, centerY := viewWidth/2, viewHeight/2

	imgSpaceX := (centerX - zpa.panOffset.X) / zpa.zoomFactor
	imgSpaceY := (centerY - zpa.panOffset.Y) / zpa.zoomFactor

	if ev.Scrolled.DY < 0 {
		zpa.zoomFactor /= (1.0 + defaultZoomScrollStep)
	} else if ev.Scrolled.DY > 0 {
		zpa.zoomFactor *= (1.0 + defaultZoomScrollStep)
	}
	if zpa.zoomFactor < zpa.minZoom {
		zpa.zoomFactor = zpa.minZoom
	}
	if zpa.zoomFactor > zpa.maxZoom {
		zpa.zoomFactor = zpa.maxZoom
	}
	zpa.userZoomed = zpa.zoomFactor > zpa.fitZoom*1.01

	zpa.panOffset.X = centerX - (imgSpaceX * zpa.zoomFactor)
	zpa.panOffset.Y = centerY - (imgSpaceY * zpa.zoomFactor)
	zpa.Refresh()
}

// Tapped swallows taps so they do not reach the lightbox backdrop.
func (zpa *ZoomPanArea) Tapped(*fyne.PointEvent) {}

// Dragged pans a zoomed image or tracks a swipe.
func (zpa *ZoomPanArea) Dragged(ev *fyne.DragEvent) {
	if !zpa.dragging {
		zpa.dragging = true
		zpa.panning = zpa.userZoomed
	}
	if zpa.panning {
		zpa.panOffset = zpa.panOffset.Add(ev.Dragged)
		zpa.Refresh()
		return
	}
	zpa.swipe.drag(ev)
}

// DragEnd finishes a pan or a swipe.
func (zpa *ZoomPanArea) DragEnd() {
	wasPanning := zpa.panning
	zpa.dragging = false
	zpa.panning = false
	if wasPanning {
		return
	}
	zpa.swipe.end(zpa.OnSwipeError)
}

// swipeDrag feeds the drag events of a widget into a SwipeTracker.
type swipeDrag struct {
	tracker *input.SwipeTracker
	active  bool
	lastX   float32
}

func (s *swipeDrag) drag(ev *fyne.DragEvent) {
	if s.tracker == nil {
		return
	}
	if !s.active {
		s.active = true
		s.tracker.Start(ev.Position.X - ev.Dragged.DX)
	}
	s.lastX = ev.Position.X
}

func (s *swipeDrag) end(onError func(error)) {
	if !s.active {
		return
	}
	s.active = false
	if _, err := s.tracker.End(s.lastX); err != nil && onError != nil {
		onError(err)
	}
}

type zoomPanAreaRenderer struct{ zpa *ZoomPanArea }

// Layout refits the image on resize unless the user zoomed in.
func (r *zoomPanAreaRenderer) Layout(size fyne.Size) {
	r.zpa.raster.Resize(size)
	if !r.zpa.userZoomed && r.zpa.originalImg != nil {
		r.zpa.Reset()
	}
}
func (r *zoomPanAreaRenderer) MinSize() fyne.Size           { return fyne.NewSize(100, 100) }
func (r *zoomPanAreaRenderer) Refresh()                     { canvas.Refresh(r.zpa.raster) }
func (r *zoomPanAreaRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.zpa.raster} }
func (r *zoomPanAreaRenderer) Destroy()                     {}

var _ fyne.Widget = (*ZoomPanArea)(nil)
var _ fyne.Scrollable = (*ZoomPanArea)(nil)
var _ fyne.Draggable = (*ZoomPanArea)(nil)
var _ fyne.Tappable = (*ZoomPanArea)(nil)
