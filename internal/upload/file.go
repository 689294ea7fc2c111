// Package upload turns user-selected files into gallery items.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2/storage"

	"fygallery/internal/scan"
)

// File is what the upload path needs from a selected file.
type File interface {
	// Name is the base file name, extension included.
	Name() string
	// MediaType is the declared type, for example "image/png".
	MediaType() string
	// Open returns the file content.
	Open() (io.ReadCloser, error)
}

// extraTypes covers video containers the platform MIME table often lacks.
var extraTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".ogv":  "video/ogg",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

// MediaTypeForName guesses a media type from a file extension. Known media
// extensions come from the table above, anything else from the Fyne storage
// URI of the path. Files without an extension yield "application/octet-stream".
func MediaTypeForName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extraTypes[ext]; ok {
		return t
	}
	if ext == "" {
		return "application/octet-stream"
	}
	return storage.NewFileURI(name).MimeType()
}

// OSFile is a File backed by a path on disk.
type OSFile struct {
	Path string
	// Type overrides the extension based guess when set.
	Type string
}

// NewOSFile creates an OSFile with its media type guessed from the extension.
func NewOSFile(path string) OSFile {
	return OSFile{Path: path, Type: MediaTypeForName(path)}
}

// Name returns the base name of the path.
func (f OSFile) Name() string {
	return filepath.Base(f.Path)
}

// MediaType returns the declared or guessed media type.
func (f OSFile) MediaType() string {
	if f.Type != "" {
		return f.Type
	}
	return MediaTypeForName(f.Path)
}

// Open opens the file for reading.
func (f OSFile) Open() (io.ReadCloser, error) {
	rc, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	return rc, nil
}

// FilesFromScan wraps the result of a directory scan as upload files.
func FilesFromScan(items scan.FileItems) []File {
	files := make([]File, 0, len(items))
	for _, it := range items {
		files = append(files, NewOSFile(it.Path))
	}
	return files
}

// FileError reports a failure for one file of a batch.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
