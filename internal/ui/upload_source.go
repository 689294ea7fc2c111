package ui

import (
	"io"
	"strings"

	"fyne.io/fyne/v2"

	"fygallery/internal/upload"
)

// uriFile adapts a file picked in a Fyne dialog to upload.File. The reader is
// already open, so Open hands it out once.
type uriFile struct {
	rc fyne.URIReadCloser
}

var _ upload.File = uriFile{}

func newURIFile(rc fyne.URIReadCloser) uriFile {
	return uriFile{rc: rc}
}

func (f uriFile) Name() string {
	return f.rc.URI().Name()
}

// MediaType prefers the type Fyne reports and falls back to the extension.
func (f uriFile) MediaType() string {
	mt := f.rc.URI().MimeType()
	if mt == "" || mt == "application/octet-stream" || !strings.Contains(mt, "/") {
		return upload.MediaTypeForName(f.Name())
	}
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	return mt
}

func (f uriFile) Open() (io.ReadCloser, error) {
	return f.rc, nil
}
