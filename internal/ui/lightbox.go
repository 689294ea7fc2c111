package ui

import (
	"fmt"
	"image/color"
	"net/http"
	"sort"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"fygallery/internal/gallery"
	"fygallery/internal/input"
	"fygallery/internal/thumbs"
)

const noFilterOption = "none"

// lightbox is the full window overlay the viewer renders into. It implements
// gallery.Surface.
type lightbox struct {
	app *App

	root         *fyne.Container
	backdrop     *backdrop
	area         *ZoomPanArea
	video        *lightboxPanel
	videoTitle   *widget.Label
	videoSource  *widget.Label
	titleLabel   *widget.Label
	counterLabel *widget.Label
	infoText     *widget.RichText
	filterSelect *widget.Select
	playBtn      *widget.Button
	syncing      bool

	client  *http.Client
	loadSeq uint64
}

var _ gallery.Surface = (*lightbox)(nil)

func newLightbox(a *App, filters []string) *lightbox {
	lb := &lightbox{
		app:          a,
		titleLabel:   widget.NewLabel(""),
		counterLabel: widget.NewLabel(""),
		infoText:     widget.NewRichTextFromMarkdown(""),
		videoTitle:   widget.NewLabel(""),
		videoSource:  widget.NewLabel(""),
		client:       &http.Client{Timeout: 30 * time.Second},
	}
	lb.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	lb.titleLabel.Truncation = fyne.TextTruncateEllipsis
	lb.videoSource.Truncation = fyne.TextTruncateEllipsis
	lb.infoText.Wrapping = fyne.TextWrapWord

	lb.area = NewZoomPanArea(nil)
	lb.area.OnSwipeError = a.handleNavError

	lb.filterSelect = widget.NewSelect(filters, func(selected string) {
		if lb.syncing {
			return
		}
		// The select keeps focus after a pick and would eat the arrow keys.
		defer a.releaseFocus()
		name := selected
		if name == noFilterOption {
			name = ""
		}
		if name == a.viewer.DisplayFilter() {
			return
		}
		if err := a.viewer.SetDisplayFilter(name); err != nil {
			a.handleNavError(err)
		}
	})
	lb.filterSelect.PlaceHolder = "Display filter"

	lb.videoTitle.TextStyle = fyne.TextStyle{Bold: true}
	lb.videoTitle.Alignment = fyne.TextAlignCenter
	lb.videoSource.Alignment = fyne.TextAlignCenter
	lb.video = newLightboxPanel(container.NewCenter(container.NewVBox(
		container.NewCenter(widget.NewIcon(theme.MediaVideoIcon())),
		lb.videoTitle,
		widget.NewLabel("Video playback is not supported in this window."),
		lb.videoSource,
	)))
	lb.video.OnSwipeError = a.handleNavError
	lb.video.Hide()

	lb.playBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() { a.toggleSlideshow() })
	closeBtn := widget.NewButtonWithIcon("", theme.CancelIcon(), func() { a.viewer.Close() })
	prevBtn := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { a.handleNavError(a.viewer.Prev()) })
	nextBtn := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { a.handleNavError(a.viewer.Next()) })

	top := newLightboxPanel(container.NewBorder(nil, nil, lb.titleLabel,
		container.NewHBox(lb.counterLabel, lb.playBtn, lb.filterSelect, closeBtn)))
	bottom := newLightboxPanel(container.NewVBox(widget.NewSeparator(), lb.infoText))

	lb.backdrop = newBackdrop(color.NRGBA{A: 235}, func() { a.viewer.Close() })
	lb.root = container.NewStack(
		lb.backdrop,
		container.NewBorder(top, bottom,
			container.NewCenter(prevBtn), container.NewCenter(nextBtn),
			container.NewStack(lb.area, lb.video)),
	)
	lb.root.Hide()
	return lb
}

// ShowItem implements gallery.Surface.
func (lb *lightbox) ShowItem(item gallery.MediaItem, displayFilter string) {
	lb.root.Show()
	lb.titleLabel.SetText(item.Title)
	lb.syncFilter(displayFilter)
	lb.updateInfoText(item)
	lb.loadSeq++

	if item.Kind == gallery.KindVideo {
		lb.area.SetImage(nil)
		lb.area.Hide()
		lb.videoTitle.SetText(item.Title)
		lb.videoSource.SetText(shortSource(item.Source))
		lb.video.Show()
		return
	}

	lb.video.Hide()
	lb.area.Show()
	lb.area.SetImage(nil)
	lb.area.SetFilter(displayFilter)

	seq := lb.loadSeq
	source := item.Source
	go func() {
		img, err := thumbs.LoadImage(lb.client, source)
		lb.app.dispatch(func() {
			if seq != lb.loadSeq {
				return
			}
			if err != nil {
				lb.app.addLogMessage(fmt.Sprintf("Error loading %s: %v", item.Title, err))
				return
			}
			lb.area.SetImage(img)
		})
	}()
}

// ApplyFilter implements gallery.Surface.
func (lb *lightbox) ApplyFilter(displayFilter string) {
	lb.syncFilter(displayFilter)
	lb.area.SetFilter(displayFilter)
}

// Clear implements gallery.Surface. Pending loads are dropped.
func (lb *lightbox) Clear() {
	lb.loadSeq++
	lb.area.SetImage(nil)
	lb.area.SetFilter("")
	lb.syncFilter("")
	lb.titleLabel.SetText("")
	lb.counterLabel.SetText("")
	lb.videoTitle.SetText("")
	lb.videoSource.SetText("")
	lb.video.Hide()
	lb.infoText.ParseMarkdown("")
	lb.root.Hide()
}

// LockScroll implements gallery.Surface.
func (lb *lightbox) LockScroll(locked bool) {
	lb.app.lockGridScroll(locked)
}

func (lb *lightbox) syncFilter(displayFilter string) {
	lb.syncing = true
	defer func() { lb.syncing = false }()
	if displayFilter == "" {
		lb.filterSelect.SetSelected(noFilterOption)
		if lb.filterSelect.Selected != noFilterOption {
			lb.filterSelect.ClearSelected()
		}
		return
	}
	lb.filterSelect.SetSelected(displayFilter)
}

// setSwipeTracker routes swipes on the image and on the video card to t.
func (lb *lightbox) setSwipeTracker(t *input.SwipeTracker) {
	lb.area.SetSwipeTracker(t)
	lb.video.swipe.tracker = t
}

func (lb *lightbox) setPlaying(playing bool) {
	if playing {
		lb.playBtn.SetIcon(theme.MediaPauseIcon())
	} else {
		lb.playBtn.SetIcon(theme.MediaPlayIcon())
	}
}

func (lb *lightbox) setCounter(position, total int) {
	lb.counterLabel.SetText(fmt.Sprintf("%s / %s", humanize.Comma(int64(position+1)), humanize.Comma(int64(total))))
}

func (lb *lightbox) updateInfoText(item gallery.MediaItem) {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**  %s", item.Title, gallery.Tile{Category: item.Category, Kind: item.Kind}.Caption())
	if item.Meta != nil {
		fmt.Fprintf(&b, "  |  %s", humanize.Bytes(uint64(item.Meta.Size)))
		if item.Meta.Width > 0 {
			fmt.Fprintf(&b, "  |  %d x %d px", item.Meta.Width, item.Meta.Height)
		}
		if len(item.Meta.EXIFData) > 0 {
			keys := make([]string, 0, len(item.Meta.EXIFData))
			for k := range item.Meta.EXIFData {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			b.WriteString("\n\n")
			for _, k := range keys {
				fmt.Fprintf(&b, "%s: %s  ", k, item.Meta.EXIFData[k])
			}
		}
	}
	lb.infoText.ParseMarkdown(b.String())
}

// shortSource keeps embedded uploads out of labels.
func shortSource(source string) string {
	if strings.HasPrefix(source, "data:") {
		mediaType, _, _ := strings.Cut(strings.TrimPrefix(source, "data:"), ";")
		return "uploaded " + mediaType + ", " + humanize.Bytes(uint64(len(source)))
	}
	return source
}

// lightboxPanel holds lightbox content. Taps on it never reach the backdrop,
// and horizontal drags are swipes once a tracker is set.
type lightboxPanel struct {
	widget.BaseWidget
	content fyne.CanvasObject
	swipe   swipeDrag

	OnSwipeError func(error)
}

func newLightboxPanel(content fyne.CanvasObject) *lightboxPanel {
	p := &lightboxPanel{content: content}
	p.ExtendBaseWidget(p)
	return p
}

func (p *lightboxPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

func (p *lightboxPanel) Tapped(*fyne.PointEvent) {}

func (p *lightboxPanel) Dragged(ev *fyne.DragEvent) {
	p.swipe.drag(ev)
}

func (p *lightboxPanel) DragEnd() {
	p.swipe.end(p.OnSwipeError)
}

// backdrop is the dimmed layer behind the lightbox. Tapping it closes the viewer.
type backdrop struct {
	widget.BaseWidget
	rect     *canvas.Rectangle
	onTapped func()
}

func newBackdrop(fill color.Color, onTapped func()) *backdrop {
	b := &backdrop{rect: canvas.NewRectangle(fill), onTapped: onTapped}
	b.ExtendBaseWidget(b)
	return b
}

func (b *backdrop) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.rect)
}

func (b *backdrop) Tapped(*fyne.PointEvent) {
	if b.onTapped != nil {
		b.onTapped()
	}
}
