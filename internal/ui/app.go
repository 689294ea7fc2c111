// Package ui is the Fyne host of the gallery: the thumbnail grid, the lightbox
// overlay and the upload dialogs.
package ui

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"github.com/dustin/go-humanize"

	"fygallery/internal/config"
	"fygallery/internal/gallery"
	"fygallery/internal/input"
	"fygallery/internal/scan"
	"fygallery/internal/slideshow"
	"fygallery/internal/thumbs"
	"fygallery/internal/upload"
)

// App represents the whole application with all its windows, widgets and functions
type App struct {
	app fyne.App
	UI  UI
	cfg *config.Config

	// dispatch runs fn on the UI goroutine. fyne.Do in the app.
	dispatch func(fn func())

	store    *gallery.Store
	viewer   *gallery.Viewer
	keys     *input.KeyDispatcher
	swipe    *input.SwipeTracker
	grid     gallery.Grid[*thumbTile]
	lightbox *lightbox
	player   *slideshow.Player

	uploader *upload.Uploader
	cache    *thumbs.Cache
	lazy     *thumbs.LazyLoader

	logUIManager *LogUIManager
	isDarkTheme  bool
	savedOffset  fyne.Position
}

// newApp wires the collection, the viewer and the services behind a new main
// window of fa.
func newApp(fa fyne.App, cfg *config.Config, dispatch func(func())) *App {
	a := &App{app: fa, cfg: cfg, dispatch: dispatch}

	a.UI.MainWin = fa.NewWindow("FyGallery")
	a.store = gallery.NewStore(cfg.SeedItems()...)
	a.lightbox = newLightbox(a, cfg.Filters())
	a.viewer = gallery.NewViewer(a.store, a.lightbox)
	a.viewer.OnChange = a.onViewerChange
	a.keys = input.NewKeyDispatcher(a.viewer)
	a.swipe = input.NewSwipeTracker(a.viewer, cfg.SwipePixels())
	a.lightbox.setSwipeTracker(a.swipe)
	a.player = slideshow.NewPlayer(cfg.SlideshowInterval(), dispatch, func() {
		a.handleNavError(a.viewer.Next())
	})
	a.player.OnStateChange = a.lightbox.setPlaying

	a.UI.MainWin.SetContent(a.buildMainUI())

	logger := a.logUIManager.Logger(dispatch)
	a.uploader = upload.NewUploader(upload.NewDataURLDecoder(), dispatch, cfg.Uploads.Ordered, logger)
	a.cache = openThumbCache(cfg, logger)
	gen := thumbs.NewGenerator(a.cache, cfg.ThumbnailPixels())
	a.lazy = thumbs.NewLazyLoader(gen, cfg.LazyScanDelay(), dispatch, logger)

	size := float32(cfg.ThumbnailPixels())
	a.grid = gallery.Grid[*thumbTile]{
		Build: func(tile gallery.Tile, open func()) *thumbTile {
			return newThumbTile(tile, size, open)
		},
		AfterRender: func(_ []gallery.Tile, nodes []*thumbTile) {
			targets := make([]thumbs.Target, len(nodes))
			for i, n := range nodes {
				targets[i] = n
			}
			a.lazy.Observe(targets)
		},
	}
	a.store.Subscribe(a.refreshGrid)
	a.refreshGrid()

	a.UI.MainWin.SetCloseIntercept(func() {
		if a.cache != nil {
			log.Println("Closing thumbnail cache...")
			if err := a.cache.Close(); err != nil {
				log.Printf("Error closing thumbnail cache: %v", err)
			}
		}
		a.UI.MainWin.Close()
	})
	return a
}

// openThumbCache opens the bbolt cache unless disabled. Failures leave the
// app running without a cache.
func openThumbCache(cfg *config.Config, logger func(string)) *thumbs.Cache {
	if cfg.Thumbs.Disabled {
		return nil
	}
	path, err := cfg.ThumbCachePath()
	if err != nil {
		logger(fmt.Sprintf("Thumbnail cache disabled: %v", err))
		return nil
	}
	cache, err := thumbs.OpenCache(path, logger)
	if err != nil {
		logger(fmt.Sprintf("Thumbnail cache disabled: %v", err))
		return nil
	}
	return cache
}

// addLogMessage adds a message to the UI log display.
func (a *App) addLogMessage(message string) {
	if a.logUIManager != nil {
		a.logUIManager.AddLogMessage(message)
	} else {
		log.Printf("LogUIManager not ready, console log: %s", message)
	}
}

// handleNavError reports viewer errors. A nil error is ignored.
func (a *App) handleNavError(err error) {
	switch {
	case err == nil:
	case errors.Is(err, gallery.ErrEmptyView):
		a.addLogMessage("Nothing left to show, lightbox closed.")
	case errors.Is(err, gallery.ErrViewerClosed):
	default:
		a.addLogMessage(err.Error())
	}
}

// releaseFocus gives the keyboard back to the window so arrow keys and Esc
// reach onTypedKey.
func (a *App) releaseFocus() {
	a.UI.MainWin.Canvas().Unfocus()
}

// openViewer is the click handler of every grid tile.
func (a *App) openViewer(index int) {
	if err := a.viewer.Open(index); err != nil {
		a.addLogMessage(fmt.Sprintf("Cannot open item %d: %v", index, err))
	}
}

func (a *App) onViewerChange() {
	if a.viewer.IsOpen() {
		a.lightbox.setCounter(a.viewer.Position(), a.store.ViewLen())
		if item, ok := a.viewer.Current(); ok {
			a.UI.MainWin.SetTitle(fmt.Sprintf("FyGallery - %s", item.Title))
		}
	} else {
		a.player.Pause(false)
		a.UI.MainWin.SetTitle("FyGallery")
	}
	a.updateStatusBar()
}

// lockGridScroll hides the grid behind the lightbox so it neither scrolls nor
// takes taps, and restores the scroll offset afterwards.
func (a *App) lockGridScroll(locked bool) {
	if a.UI.gridScroll == nil {
		return
	}
	if locked {
		a.savedOffset = a.UI.gridScroll.Offset
		a.UI.gridScroll.Hide()
		return
	}
	a.UI.gridScroll.Show()
	a.UI.gridScroll.Offset = a.savedOffset
	a.UI.gridScroll.Refresh()
}

// updateStatusBar updates the text of the status bar.
func (a *App) updateStatusBar() {
	if a.UI.statusLabel == nil {
		return
	}
	text := fmt.Sprintf("Showing %s of %s items", humanize.Comma(int64(a.store.ViewLen())), humanize.Comma(int64(a.store.Len())))
	if sel := a.store.Selector(); !sel.IsAll() {
		text += fmt.Sprintf(" (Filtered: %s)", sel.Value())
	}
	if a.viewer.IsOpen() {
		text += fmt.Sprintf("  |  Viewing %d / %d", a.viewer.Position()+1, a.store.ViewLen())
	}
	a.UI.statusLabel.SetText(text)
}

// uploadFiles appends files to the collection as they finish decoding.
func (a *App) uploadFiles(files []upload.File) *upload.Batch {
	return a.uploader.Upload(files, upload.Handlers{
		Item: a.store.Append,
		Error: func(err error) {
			a.addLogMessage(fmt.Sprintf("Upload failed: %v", err))
		},
		Done: func(s upload.Summary) {
			if s.Added+s.Failed == 0 {
				return
			}
			msg := fmt.Sprintf("Added %s item(s)", humanize.Comma(int64(s.Added)))
			if s.Failed > 0 {
				msg += fmt.Sprintf(", %d failed", s.Failed)
			}
			a.addLogMessage(msg)
		},
	})
}

// loadDirectory scans dir in the background and uploads every media file in it.
// done, when set, receives the batch once it started.
func (a *App) loadDirectory(dir string, done func(*upload.Batch)) {
	go func() {
		items := scan.Collect(dir, a.logUIManager.Logger(a.dispatch))
		files := upload.FilesFromScan(items)
		a.dispatch(func() {
			if len(files) == 0 {
				a.addLogMessage(fmt.Sprintf("No media found in %s", dir))
			}
			b := a.uploadFiles(files)
			if done != nil {
				done(b)
			}
		})
	}()
}

// toggleSlideshow starts or stops autoplay of the open lightbox.
func (a *App) toggleSlideshow() {
	if !a.viewer.IsOpen() {
		return
	}
	if a.player.Toggle() {
		a.addLogMessage(fmt.Sprintf("Slideshow playing every %s", a.player.Interval()))
	} else {
		a.addLogMessage("Slideshow paused")
	}
}

// purgeThumbCache drops every cached thumbnail after confirmation.
func (a *App) purgeThumbCache() {
	if a.cache == nil {
		dialog.ShowInformation("Thumbnail Cache", "The thumbnail cache is disabled.", a.UI.MainWin)
		return
	}
	n := a.cache.Len()
	dialog.ShowConfirm("Thumbnail Cache", fmt.Sprintf("Remove %s cached thumbnails?", humanize.Comma(int64(n))), func(ok bool) {
		if !ok {
			return
		}
		if err := a.cache.Purge(); err != nil {
			dialog.ShowError(err, a.UI.MainWin)
			return
		}
		a.addLogMessage(fmt.Sprintf("Removed %s cached thumbnails", humanize.Comma(int64(n))))
	}, a.UI.MainWin)
}

// toggleTheme switches between the light and dark application themes.
func (a *App) toggleTheme() {
	a.isDarkTheme = !a.isDarkTheme
	if a.isDarkTheme {
		a.app.Settings().SetTheme(NewCompactTheme(theme.DarkTheme(), compactPadding))
	} else {
		a.app.Settings().SetTheme(NewCompactTheme(theme.LightTheme(), compactPadding))
	}
}

const compactPadding = 2

// CreateApplication builds the main window, starts loading dirs and runs the
// Fyne event loop until the window closes.
func CreateApplication(cfg *config.Config, dirs []string) error {
	for i, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		s, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("error while opening the directory '%s': %w", dir, err)
		}
		if !s.IsDir() {
			return fmt.Errorf("'%s' is not a directory", dir)
		}
		dirs[i] = abs
	}

	fa := app.NewWithID("io.github.fygallery")
	fa.SetIcon(theme.MediaPhotoIcon())
	fa.Settings().SetTheme(NewCompactTheme(fa.Settings().Theme(), compactPadding))

	ui := newApp(fa, cfg, fyne.Do)
	ui.UI.MainWin.SetIcon(theme.MediaPhotoIcon())
	for _, dir := range dirs {
		ui.loadDirectory(dir, nil)
	}

	ui.UI.MainWin.Resize(fyne.NewSize(1200, 800))
	ui.UI.MainWin.CenterOnScreen()
	ui.UI.MainWin.ShowAndRun()
	return nil
}
