package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"fygallery/internal/config"
	"fygallery/internal/effects"
	"fygallery/internal/gallery"
	"fygallery/internal/input"
	"fygallery/internal/scan"
	"fygallery/internal/thumbs"
	"fygallery/internal/upload"
)

var (
	configPathFlag string
	orderedFlag    bool
	noSeedFlag     bool
	cfg            *config.Config
)

func cliLogger(msg string) {
	log.Printf("[fygallery-cli] %s", msg)
}

// keyNames maps the --keys values to the keys the lightbox reacts to.
var keyNames = map[string]fyne.KeyName{
	"right":  fyne.KeyRight,
	"left":   fyne.KeyLeft,
	"escape": fyne.KeyEscape,
	"esc":    fyne.KeyEscape,
}

// textSurface prints every viewer rendering call as one line.
type textSurface struct {
	out io.Writer
}

func (s textSurface) ShowItem(item gallery.MediaItem, displayFilter string) {
	fmt.Fprintf(s.out, "show %q (%s) filter=%s\n", item.Title, item.Kind, filterLabel(displayFilter))
}

func (s textSurface) ApplyFilter(displayFilter string) {
	fmt.Fprintf(s.out, "filter %s\n", filterLabel(displayFilter))
}

func (s textSurface) Clear() {
	fmt.Fprintln(s.out, "clear")
}

func (s textSurface) LockScroll(locked bool) {
	if locked {
		fmt.Fprintln(s.out, "scroll locked")
	} else {
		fmt.Fprintln(s.out, "scroll unlocked")
	}
}

func filterLabel(name string) string {
	if name == "" {
		return "none"
	}
	return name
}

// loadStore builds the collection: the configured seed (unless disabled)
// followed by every media file found under dirs.
func loadStore(dirs []string) (*gallery.Store, upload.Summary, error) {
	var store *gallery.Store
	if noSeedFlag {
		store = gallery.NewStore()
	} else {
		store = gallery.NewStore(cfg.SeedItems()...)
	}

	var files []upload.File
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, upload.Summary{}, err
		}
		if _, err := os.Stat(abs); err != nil {
			return nil, upload.Summary{}, fmt.Errorf("cannot read directory %s: %w", dir, err)
		}
		files = append(files, upload.FilesFromScan(scan.Collect(abs, cliLogger))...)
	}
	if len(files) == 0 {
		return store, upload.Summary{}, nil
	}

	u := upload.NewUploader(upload.NewDataURLDecoder(), upload.SerialDispatcher(), orderedFlag || cfg.Uploads.Ordered, cliLogger)
	summary := u.Upload(files, upload.Handlers{
		Item: store.Append,
		Error: func(err error) {
			cliLogger(err.Error())
		},
	}).Wait()
	return store, summary, nil
}

func parseSwipe(value string) (float32, float32, error) {
	from, to, ok := strings.Cut(value, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid swipe %q, want start:end", value)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(from), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid swipe start %q: %w", from, err)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(to), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid swipe end %q: %w", to, err)
	}
	return float32(start), float32(end), nil
}

func describe(item gallery.MediaItem) string {
	source := item.Source
	if strings.HasPrefix(source, "data:") {
		source = "(embedded)"
	}
	line := fmt.Sprintf("%-24s %-12s %s", item.Title, gallery.Tile{Category: item.Category, Kind: item.Kind}.Caption(), source)
	if item.Meta != nil {
		line += " " + humanize.Bytes(uint64(item.Meta.Size))
		if item.Meta.Width > 0 {
			line += fmt.Sprintf(" %dx%d", item.Meta.Width, item.Meta.Height)
		}
	}
	return line
}

// NewRootCmd creates the root command for the CLI application.
// loadConfig reads the configuration for the --config value, which lets tests
// hand in a fixed collection.
func NewRootCmd(loadConfig func(path string) (*config.Config, error)) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "fygallery-cli",
		Short: "FyGallery CLI - inspect and browse a media collection",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(configPathFlag)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return nil
		},
	}

	// List the filtered view
	var listFilter string
	listCmd := &cobra.Command{
		Use:   "list [dir...]",
		Short: "List the collection, optionally narrowed by a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, summary, err := loadStore(args)
			if err != nil {
				return err
			}
			sel := gallery.ParseSelector(listFilter)
			view := store.Filter(sel)
			for i, item := range view {
				cmd.Printf("%3d  %s\n", i, describe(item))
			}
			cmd.Printf("%s of %s items match %s", humanize.Comma(int64(len(view))), humanize.Comma(int64(store.Len())), sel)
			if summary.Failed > 0 {
				cmd.Printf(" (%d upload(s) failed)", summary.Failed)
			}
			cmd.Println()
			return nil
		},
	}
	listCmd.Flags().StringVar(&listFilter, "filter", "all", "Filter: all, videos or a category name")
	rootCmd.AddCommand(listCmd)

	// List categories
	categoriesCmd := &cobra.Command{
		Use:   "categories [dir...]",
		Short: "List categories with item counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := loadStore(args)
			if err != nil {
				return err
			}
			for _, name := range store.Categories() {
				n := len(store.Filter(gallery.ByCategory(name)))
				cmd.Printf("%s (%d)\n", name, n)
			}
			if videos := len(store.Filter(gallery.ByKind(gallery.KindVideo))); videos > 0 {
				cmd.Printf("videos (%d)\n", videos)
			}
			return nil
		},
	}
	rootCmd.AddCommand(categoriesCmd)

	// Drive the lightbox headlessly
	var (
		browseFilter  string
		openIndex     int
		keys          []string
		swipes        []string
		displayFilter string
	)
	browseCmd := &cobra.Command{
		Use:   "browse [dir...]",
		Short: "Open the lightbox and replay key presses and swipes",
		Long: `Open the lightbox at --open on the filtered view, optionally apply a display
filter, then replay --keys (right, left, escape) followed by --swipe gestures
given as start:end X coordinates. Every rendering step is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := loadStore(args)
			if err != nil {
				return err
			}
			store.Filter(gallery.ParseSelector(browseFilter))

			viewer := gallery.NewViewer(store, textSurface{out: cmd.OutOrStdout()})
			defer viewer.Detach()
			if err := viewer.Open(openIndex); err != nil {
				return err
			}
			if displayFilter != "" {
				if !effects.Known(displayFilter) {
					return fmt.Errorf("unknown display filter %q", displayFilter)
				}
				if err := viewer.SetDisplayFilter(displayFilter); err != nil {
					return err
				}
			}

			dispatcher := input.NewKeyDispatcher(viewer)
			for _, raw := range keys {
				key, ok := keyNames[strings.ToLower(strings.TrimSpace(raw))]
				if !ok {
					key = fyne.KeyName(raw)
				}
				handled, err := dispatcher.Dispatch(key)
				if err != nil && !errors.Is(err, gallery.ErrEmptyView) {
					return err
				}
				if !handled {
					cmd.Printf("key %s ignored\n", raw)
				}
			}

			tracker := input.NewSwipeTracker(viewer, cfg.SwipePixels())
			for _, s := range swipes {
				start, end, err := parseSwipe(s)
				if err != nil {
					return err
				}
				tracker.Start(start)
				if _, err := tracker.End(end); err != nil && !errors.Is(err, gallery.ErrEmptyView) {
					return err
				}
			}

			if item, ok := viewer.Current(); ok {
				cmd.Printf("open %d/%d %q\n", viewer.Position()+1, store.ViewLen(), item.Title)
			} else {
				cmd.Println("closed")
			}
			return nil
		},
	}
	browseCmd.Flags().StringVar(&browseFilter, "filter", "all", "Filter applied before opening")
	browseCmd.Flags().IntVar(&openIndex, "open", 0, "Index in the filtered view to open")
	browseCmd.Flags().StringSliceVar(&keys, "keys", nil, "Keys to replay, e.g. right,left,escape")
	browseCmd.Flags().StringSliceVar(&swipes, "swipe", nil, "Swipes to replay as start:end, e.g. 300:200")
	browseCmd.Flags().StringVar(&displayFilter, "display-filter", "", "Display filter applied after opening")
	rootCmd.AddCommand(browseCmd)

	// Warm or purge the thumbnail cache
	var purge bool
	thumbsCmd := &cobra.Command{
		Use:   "thumbs [dir...]",
		Short: "Generate grid thumbnails into the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.ThumbCachePath()
			if err != nil {
				return fmt.Errorf("failed to resolve thumbnail cache path: %w", err)
			}
			cache, err := thumbs.OpenCache(path, cliLogger)
			if err != nil {
				return err
			}
			defer cache.Close()

			if purge {
				n := cache.Len()
				if err := cache.Purge(); err != nil {
					return err
				}
				cmd.Printf("Purged %s thumbnails\n", humanize.Comma(int64(n)))
				return nil
			}

			store, _, err := loadStore(args)
			if err != nil {
				return err
			}
			gen := thumbs.NewGenerator(cache, cfg.ThumbnailPixels())
			var total uint64
			made := 0
			for _, item := range store.Items() {
				if item.Kind != gallery.KindImage {
					continue
				}
				data, err := gen.Thumbnail(item.Source)
				if err != nil {
					cmd.Printf("skip %s: %v\n", item.Title, err)
					continue
				}
				made++
				total += uint64(len(data))
			}
			cmd.Printf("%d thumbnails ready (%s), cache holds %s\n", made, humanize.Bytes(total), humanize.Comma(int64(cache.Len())))
			return nil
		},
	}
	thumbsCmd.Flags().BoolVar(&purge, "purge", false, "Drop every cached thumbnail instead")
	rootCmd.AddCommand(thumbsCmd)

	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to a config.toml")
	rootCmd.PersistentFlags().BoolVar(&orderedFlag, "ordered", false, "Append uploads in file order")
	rootCmd.PersistentFlags().BoolVar(&noSeedFlag, "no-seed", false, "Start from an empty collection")

	return rootCmd
}

func main() {
	rootCmd := NewRootCmd(config.Load)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
