// Package gallery holds the media collection, its filtered views and the
// lightbox viewer state.
package gallery

import (
	"strings"
	"time"
)

// UserUploadCategory is the category reserved for items added by the user.
const UserUploadCategory = "user-upload"

// Kind is the media type of an item.
type Kind int

const (
	// KindImage is a still image.
	KindImage Kind = iota
	// KindVideo is a video clip.
	KindVideo
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// ParseKind maps "image" or "video" to a Kind. Anything else is reported as not ok.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image":
		return KindImage, true
	case "video":
		return KindVideo, true
	default:
		return KindImage, false
	}
}

// KindFromMediaType infers the kind from a declared media type such as "image/png".
// Anything that is not an image is treated as video.
func KindFromMediaType(mediaType string) Kind {
	if strings.HasPrefix(strings.ToLower(mediaType), "image/") {
		return KindImage
	}
	return KindVideo
}

// TitleFromFilename drops the extension from a file name. Everything from the
// first dot on is removed, so "beach.day.jpg" becomes "beach".
func TitleFromFilename(name string) string {
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}

// Meta holds optional details collected while decoding an uploaded file.
type Meta struct {
	Size     int64
	Width    int
	Height   int
	ModTime  time.Time
	EXIFData map[string]string
}

// MediaItem is a single entry of the collection. Values are never modified
// after creation; copy semantics keep them safe to share.
type MediaItem struct {
	Source   string
	Title    string
	Category string
	Kind     Kind
	Meta     *Meta
}

// NewMediaItem creates an item without metadata.
func NewMediaItem(source, title, category string, kind Kind) MediaItem {
	return MediaItem{
		Source:   source,
		Title:    title,
		Category: category,
		Kind:     kind,
	}
}

// IsUpload reports whether the item was added by the user.
func (m MediaItem) IsUpload() bool {
	return m.Category == UserUploadCategory
}
