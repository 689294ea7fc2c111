package thumbs

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nfnt/resize"

	"fygallery/internal/upload"
)

// maxRemoteBytes caps how much of a remote source is read.
const maxRemoteBytes = 32 << 20

// LoadImage decodes the image behind source: a data URL, an http(s) URL or a
// local path.
func LoadImage(client *http.Client, source string) (image.Image, error) {
	r, err := openSource(client, source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", shorten(source), err)
	}
	return img, nil
}

func openSource(client *http.Client, source string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(source, "data:"):
		_, data, err := upload.ParseDataURL(source)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		resp, err := client.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to fetch %s: %s", source, resp.Status)
		}
		return struct {
			io.Reader
			io.Closer
		}{io.LimitReader(resp.Body, maxRemoteBytes), resp.Body}, nil
	default:
		f, err := os.Open(strings.TrimPrefix(source, "file://"))
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", source, err)
		}
		return f, nil
	}
}

// shorten keeps log lines readable for data URLs.
func shorten(source string) string {
	if len(source) > 64 {
		return source[:61] + "..."
	}
	return source
}

// Generator produces PNG thumbnails, going through the cache when one is set.
type Generator struct {
	cache  *Cache
	client *http.Client
	size   int
}

// NewGenerator creates a generator for size x size thumbnails. cache may be nil.
func NewGenerator(cache *Cache, size int) *Generator {
	return &Generator{
		cache:  cache,
		client: &http.Client{Timeout: 20 * time.Second},
		size:   size,
	}
}

// Size is the thumbnail edge in pixels.
func (g *Generator) Size() int {
	return g.size
}

// Thumbnail returns PNG bytes for source, fitting within Size x Size.
func (g *Generator) Thumbnail(source string) ([]byte, error) {
	key := CacheKey(source, g.size)
	if g.cache != nil {
		if data, ok := g.cache.Get(key); ok {
			return data, nil
		}
	}

	img, err := LoadImage(g.client, source)
	if err != nil {
		return nil, err
	}
	thumb := resize.Thumbnail(uint(g.size), uint(g.size), img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail for %s: %w", shorten(source), err)
	}
	data := buf.Bytes()

	if g.cache != nil {
		if err := g.cache.Put(key, data); err != nil {
			g.cache.logMessage("%v", err)
		}
	}
	return data, nil
}
