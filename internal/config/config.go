package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"fygallery/internal/gallery"
)

const (
	appName          = "fygallery"
	configFileName   = "config.toml"
	thumbCacheName   = "thumbs.db"
	defaultSwipe     = 50
	defaultScanDelay = 100 * time.Millisecond
	defaultThumbSize = 200
	defaultMaxLogs   = 100
	defaultSlideshow = 3 * time.Second
	minSlideshow     = 100 * time.Millisecond
)

// DefaultDisplayFilters are offered in the lightbox when the config names none.
var DefaultDisplayFilters = []string{"none", "grayscale", "sepia", "invert", "blur", "brightness", "contrast"}

type Config struct {
	SwipeThreshold  float32  `koanf:"swipe_threshold"`    // pixels, default 50
	LazyScanDelayMs int      `koanf:"lazy_scan_delay_ms"` // delay before the thumbnail scan after a render
	ThumbnailSize   int      `koanf:"thumbnail_size"`     // grid tile edge in pixels
	MaxLogMessages  int      `koanf:"max_log_messages"`
	DisplayFilters  []string `koanf:"display_filters"`
	SlideshowSecs   float64  `koanf:"slideshow_interval"` // seconds between lightbox autoplay steps

	Uploads UploadsConfig `koanf:"uploads"`
	Thumbs  ThumbsConfig  `koanf:"thumbs"`

	// Seed collection shown at startup. Empty means the built-in sample set.
	Items []ItemConfig `koanf:"items"`
}

// UploadsConfig controls how selected files are appended.
type UploadsConfig struct {
	Ordered bool `koanf:"ordered"` // append in selection order once the whole batch is decoded
}

// ThumbsConfig controls the thumbnail cache.
type ThumbsConfig struct {
	CachePath string `koanf:"cache_path"` // bbolt file, default under the XDG cache dir
	Disabled  bool   `koanf:"disabled"`
}

// ItemConfig is one seed item.
type ItemConfig struct {
	Source   string `koanf:"source"`
	Title    string `koanf:"title"`
	Category string `koanf:"category"`
	Kind     string `koanf:"kind"` // "image" (default) or "video"
}

// Load reads the config files in priority order (last wins). explicit, when
// not empty, is loaded last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		path := expandPath(explicit)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Thumbs.CachePath != "" {
		cfg.Thumbs.CachePath = expandPath(cfg.Thumbs.CachePath)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for i, item := range c.Items {
		if strings.TrimSpace(item.Source) == "" {
			return fmt.Errorf("items[%d]: source is required", i)
		}
		if item.Kind != "" {
			if _, ok := gallery.ParseKind(item.Kind); !ok {
				return fmt.Errorf("items[%d]: unknown kind %q", i, item.Kind)
			}
		}
	}
	return nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/fygallery/config.toml
	if xdg.ConfigHome != "" {
		paths = append(paths, filepath.Join(xdg.ConfigHome, appName, configFileName))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, configFileName)

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// SwipePixels returns the swipe threshold with the default applied.
func (c *Config) SwipePixels() float32 {
	if c.SwipeThreshold <= 0 {
		return defaultSwipe
	}
	return c.SwipeThreshold
}

// LazyScanDelay returns the deferred visibility scan delay.
func (c *Config) LazyScanDelay() time.Duration {
	if c.LazyScanDelayMs <= 0 {
		return defaultScanDelay
	}
	return time.Duration(c.LazyScanDelayMs) * time.Millisecond
}

// ThumbnailPixels returns the grid tile edge.
func (c *Config) ThumbnailPixels() int {
	if c.ThumbnailSize <= 0 {
		return defaultThumbSize
	}
	return c.ThumbnailSize
}

// LogCapacity returns how many status messages the UI keeps.
func (c *Config) LogCapacity() int {
	if c.MaxLogMessages <= 0 {
		return defaultMaxLogs
	}
	return c.MaxLogMessages
}

// SlideshowInterval returns the autoplay step, never below 100ms.
func (c *Config) SlideshowInterval() time.Duration {
	if c.SlideshowSecs <= 0 {
		return defaultSlideshow
	}
	d := time.Duration(c.SlideshowSecs * float64(time.Second))
	if d < minSlideshow {
		return minSlideshow
	}
	return d
}

// Filters returns the display filter names offered in the lightbox.
func (c *Config) Filters() []string {
	if len(c.DisplayFilters) == 0 {
		return DefaultDisplayFilters
	}
	return c.DisplayFilters
}

// ThumbCachePath returns the bbolt cache location, creating its parent
// directory under the XDG cache dir when no path is configured.
func (c *Config) ThumbCachePath() (string, error) {
	if c.Thumbs.CachePath != "" {
		return c.Thumbs.CachePath, nil
	}
	return xdg.CacheFile(filepath.Join(appName, thumbCacheName))
}

// SeedItems returns the configured collection or the built-in sample set.
func (c *Config) SeedItems() []gallery.MediaItem {
	if len(c.Items) == 0 {
		return DefaultItems()
	}
	items := make([]gallery.MediaItem, 0, len(c.Items))
	for _, ic := range c.Items {
		kind, ok := gallery.ParseKind(ic.Kind)
		if !ok {
			kind = gallery.KindImage
		}
		title := ic.Title
		if title == "" {
			title = gallery.TitleFromFilename(filepath.Base(ic.Source))
		}
		items = append(items, gallery.NewMediaItem(expandPath(ic.Source), title, ic.Category, kind))
	}
	return items
}

// DefaultItems is the sample collection shown when nothing is configured.
func DefaultItems() []gallery.MediaItem {
	return []gallery.MediaItem{
		gallery.NewMediaItem("https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400", "Mountain Landscape", "nature", gallery.KindImage),
		gallery.NewMediaItem("https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=400", "City Skyline", "city", gallery.KindImage),
		gallery.NewMediaItem("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400", "Portrait", "people", gallery.KindImage),
		gallery.NewMediaItem("https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=400", "Forest Path", "nature", gallery.KindImage),
		gallery.NewMediaItem("https://images.unsplash.com/photo-1514565131-fce0801e5785?w=400", "Urban Architecture", "city", gallery.KindImage),
		gallery.NewMediaItem("https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=400", "Person Walking", "people", gallery.KindImage),
	}
}
