package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fygallery/internal/gallery"
	"fygallery/internal/scan"
)

// memFile is an in-memory File.
type memFile struct {
	name      string
	mediaType string
	data      []byte
}

func (m memFile) Name() string      { return m.name }
func (m memFile) MediaType() string { return m.mediaType }
func (m memFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

// delayDecoder sleeps per file so completion order can be forced.
type delayDecoder struct {
	delays map[string]time.Duration
	fail   map[string]bool
}

func (d delayDecoder) Decode(f File) (Decoded, error) {
	time.Sleep(d.delays[f.Name()])
	if d.fail[f.Name()] {
		return Decoded{}, errors.New("boom")
	}
	return Decoded{Source: "src:" + f.Name()}, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestMediaTypeForName(t *testing.T) {
	assert.Equal(t, "image/png", MediaTypeForName("a.PNG"))
	assert.Equal(t, "image/jpeg", MediaTypeForName("dir/b.jpeg"))
	assert.Equal(t, "video/mp4", MediaTypeForName("clip.mp4"))
	assert.Equal(t, "video/webm", MediaTypeForName("clip.webm"))
	assert.Equal(t, "application/octet-stream", MediaTypeForName("noext"))
	assert.Equal(t, "image/svg+xml", MediaTypeForName("icons/logo.SVG"), "falls back to the storage URI type")
}

func TestDataURLDecoderImage(t *testing.T) {
	data := pngBytes(t)
	d, err := NewDataURLDecoder().Decode(memFile{name: "red.png", mediaType: "image/png", data: data})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(d.Source, "data:image/png;base64,"))
	require.NotNil(t, d.Meta)
	assert.Equal(t, 4, d.Meta.Width)
	assert.Equal(t, 3, d.Meta.Height)
	assert.Equal(t, int64(len(data)), d.Meta.Size)

	mediaType, payload, err := ParseDataURL(d.Source)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, data, payload)
}

func TestDataURLDecoderVideoSkipsImageCheck(t *testing.T) {
	d, err := NewDataURLDecoder().Decode(memFile{name: "clip.mp4", mediaType: "video/mp4", data: []byte("not really a video")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(d.Source, "data:video/mp4;base64,"))
	assert.Zero(t, d.Meta.Width)
}

func TestDataURLDecoderErrors(t *testing.T) {
	_, err := NewDataURLDecoder().Decode(memFile{name: "bad.png", mediaType: "image/png", data: []byte("garbage")})
	assert.Error(t, err)

	_, err = NewDataURLDecoder().Decode(memFile{name: "empty.png", mediaType: "image/png"})
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseDataURLErrors(t *testing.T) {
	_, _, err := ParseDataURL("https://example.com/a.png")
	assert.Error(t, err)
	_, _, err = ParseDataURL("data:image/png;base64")
	assert.Error(t, err)
	_, _, err = ParseDataURL("data:text/plain,hello")
	assert.Error(t, err)
}

func TestUploadAppendsEveryFile(t *testing.T) {
	store := gallery.NewStore(gallery.NewMediaItem("seed.jpg", "Seed", "nature", gallery.KindImage))
	files := []File{
		memFile{name: "slow.jpg", mediaType: "image/jpeg"},
		memFile{name: "mid.mp4", mediaType: "video/mp4"},
		memFile{name: "fast.png", mediaType: "image/png"},
	}
	dec := delayDecoder{delays: map[string]time.Duration{
		"slow.jpg": 60 * time.Millisecond,
		"mid.mp4":  30 * time.Millisecond,
	}}
	u := NewUploader(dec, SerialDispatcher(), false, func(string) {})

	var done []Summary
	batch := u.Upload(files, Handlers{
		Item: store.Append,
		Done: func(s Summary) { done = append(done, s) },
	})
	summary := batch.Wait()

	assert.Equal(t, Summary{Added: 3}, summary)
	assert.Equal(t, []Summary{summary}, done)
	require.Equal(t, 4, store.Len())
	titles := map[string]gallery.Kind{}
	for _, item := range store.Items()[1:] {
		assert.Equal(t, gallery.UserUploadCategory, item.Category)
		titles[item.Title] = item.Kind
	}
	assert.Equal(t, map[string]gallery.Kind{
		"slow": gallery.KindImage,
		"mid":  gallery.KindVideo,
		"fast": gallery.KindImage,
	}, titles)
}

func TestUploadFailureDoesNotAbortOthers(t *testing.T) {
	store := gallery.NewStore()
	dec := delayDecoder{fail: map[string]bool{"broken.png": true}}
	u := NewUploader(dec, nil, false, func(string) {})

	var errs []error
	summary := u.Upload([]File{
		memFile{name: "ok1.png", mediaType: "image/png"},
		memFile{name: "broken.png", mediaType: "image/png"},
		memFile{name: "ok2.png", mediaType: "image/png"},
	}, Handlers{Item: store.Append, Error: func(err error) { errs = append(errs, err) }}).Wait()

	assert.Equal(t, Summary{Added: 2, Failed: 1}, summary)
	assert.Equal(t, 2, store.Len())
	require.Len(t, errs, 1)
	var fe *FileError
	require.ErrorAs(t, errs[0], &fe)
	assert.Equal(t, "broken.png", fe.Name)
}

func TestUploadOrderedKeepsSelectionOrder(t *testing.T) {
	store := gallery.NewStore()
	dec := delayDecoder{delays: map[string]time.Duration{
		"first.png":  50 * time.Millisecond,
		"second.png": 20 * time.Millisecond,
	}}
	u := NewUploader(dec, SerialDispatcher(), true, func(string) {})
	require.True(t, u.Ordered())

	u.Upload([]File{
		memFile{name: "first.png", mediaType: "image/png"},
		memFile{name: "second.png", mediaType: "image/png"},
		memFile{name: "third.png", mediaType: "image/png"},
	}, Handlers{Item: store.Append}).Wait()

	var titles []string
	for _, item := range store.Items() {
		titles = append(titles, item.Title)
	}
	assert.Equal(t, []string{"first", "second", "third"}, titles)
}

func TestUploadEmptyBatch(t *testing.T) {
	called := false
	u := NewUploader(delayDecoder{}, nil, false, func(string) {})
	summary := u.Upload(nil, Handlers{Done: func(Summary) { called = true }}).Wait()
	assert.Equal(t, Summary{}, summary)
	assert.True(t, called)
}

func TestOSFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t), 0644))

	f := NewOSFile(path)
	assert.Equal(t, "pic.png", f.Name())
	assert.Equal(t, "image/png", f.MediaType())

	d, err := NewDataURLDecoder().Decode(f)
	require.NoError(t, err)
	item := NewItem(f, d)
	assert.Equal(t, "pic", item.Title)
	assert.Equal(t, gallery.KindImage, item.Kind)
	assert.True(t, item.IsUpload())

	_, err = NewOSFile(filepath.Join(dir, "missing.png")).Open()
	assert.Error(t, err)
}

func TestFilesFromScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), pngBytes(t), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.webm"), []byte("webm"), 0644))

	files := FilesFromScan(scan.Collect(dir, func(string) {}))
	require.Len(t, files, 2)
	assert.Equal(t, "a.webm", files[0].Name())
	assert.Equal(t, "video/webm", files[0].MediaType())
	assert.Equal(t, "b.png", files[1].Name())
}
