package upload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"fygallery/internal/gallery"
)

// ErrEmptyFile is returned for zero-byte files.
var ErrEmptyFile = errors.New("file is empty")

// exifFields are the EXIF tags copied into item metadata.
var exifFields = []exif.FieldName{
	exif.DateTime, exif.Model, exif.Make, exif.ExposureTime, exif.FNumber, exif.ISOSpeedRatings, exif.FocalLength,
}

// Decoded is the displayable form of a file.
type Decoded struct {
	Source string
	Meta   *gallery.Meta
}

// Decoder turns a file into a displayable source.
type Decoder interface {
	Decode(f File) (Decoded, error)
}

// DataURLDecoder reads the whole file and embeds it as a base64 data URL.
// Images are checked with the registered image decoders so a corrupt file is
// reported here instead of showing up broken in the grid.
type DataURLDecoder struct{}

// NewDataURLDecoder creates a DataURLDecoder.
func NewDataURLDecoder() *DataURLDecoder {
	return &DataURLDecoder{}
}

// Decode implements Decoder.
func (d *DataURLDecoder) Decode(f File) (Decoded, error) {
	rc, err := f.Open()
	if err != nil {
		return Decoded{}, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return Decoded{}, fmt.Errorf("failed to read %s: %w", f.Name(), err)
	}
	if len(data) == 0 {
		return Decoded{}, ErrEmptyFile
	}

	mediaType := f.MediaType()
	meta := &gallery.Meta{Size: int64(len(data))}
	if gallery.KindFromMediaType(mediaType) == gallery.KindImage {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return Decoded{}, fmt.Errorf("failed to decode image %s: %w", f.Name(), err)
		}
		meta.Width = cfg.Width
		meta.Height = cfg.Height
		meta.EXIFData = readEXIF(data)
	}

	return Decoded{Source: DataURL(mediaType, data), Meta: meta}, nil
}

// readEXIF extracts a few common EXIF fields. Not all images have EXIF, so a
// failure just yields nil.
func readEXIF(data []byte) map[string]string {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	result := make(map[string]string)
	for _, field := range exifFields {
		tag, err := x.Get(field)
		if err == nil && tag != nil {
			result[string(field)] = tag.String()
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// DataURL encodes data as "data:<mediaType>;base64,<payload>".
func DataURL(mediaType string, data []byte) string {
	var b strings.Builder
	b.Grow(len(mediaType) + 13 + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mediaType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// ParseDataURL splits a base64 data URL into its media type and payload.
func ParseDataURL(source string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(source, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL: missing payload")
	}
	mediaType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("unsupported data URL encoding")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("malformed data URL payload: %w", err)
	}
	return mediaType, data, nil
}
