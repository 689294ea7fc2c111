package upload

import (
	"fmt"
	"log"
	"sync"

	"fygallery/internal/gallery"
)

// LoggerFunc receives progress and error messages.
type LoggerFunc func(message string)

// Dispatcher runs fn on the goroutine that owns the gallery state. The GUI
// passes fyne.Do.
type Dispatcher func(fn func())

// SerialDispatcher runs callbacks immediately on the calling goroutine while
// holding a lock, so callbacks from different decoders never overlap.
func SerialDispatcher() Dispatcher {
	var mu sync.Mutex
	return func(fn func()) {
		mu.Lock()
		defer mu.Unlock()
		fn()
	}
}

// Handlers receive the results of a batch on the dispatcher goroutine.
type Handlers struct {
	// Item is called once per successfully decoded file.
	Item func(item gallery.MediaItem)
	// Error is called once per failed file with a *FileError.
	Error func(err error)
	// Done is called after the last file of the batch was delivered.
	Done func(s Summary)
}

// Summary counts the outcome of a batch.
type Summary struct {
	Added  int
	Failed int
}

// Uploader decodes files in the background and hands the resulting items back
// through a dispatcher.
type Uploader struct {
	decoder  Decoder
	dispatch Dispatcher
	ordered  bool
	logger   LoggerFunc
}

// NewUploader creates an Uploader. In ordered mode all files of a batch are
// delivered together in selection order once every decode has finished;
// otherwise each file is delivered as soon as it is decoded.
func NewUploader(decoder Decoder, dispatch Dispatcher, ordered bool, logger LoggerFunc) *Uploader {
	if dispatch == nil {
		dispatch = SerialDispatcher()
	}
	return &Uploader{
		decoder:  decoder,
		dispatch: dispatch,
		ordered:  ordered,
		logger:   logger,
	}
}

// Ordered reports whether batches are delivered in selection order.
func (u *Uploader) Ordered() bool {
	return u.ordered
}

// NewItem builds the gallery item for an uploaded file.
func NewItem(f File, d Decoded) gallery.MediaItem {
	item := gallery.NewMediaItem(d.Source, gallery.TitleFromFilename(f.Name()), gallery.UserUploadCategory, gallery.KindFromMediaType(f.MediaType()))
	item.Meta = d.Meta
	return item
}

type result struct {
	item gallery.MediaItem
	err  error
}

// Batch tracks one call to Upload.
type Batch struct {
	done    chan struct{}
	mu      sync.Mutex
	pending int
	summary Summary
}

// Wait blocks until every file of the batch was delivered. Do not call it from
// the dispatcher goroutine.
func (b *Batch) Wait() Summary {
	<-b.done
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.summary
}

// Upload starts decoding files. Every file is processed independently: a
// failure is reported through h.Error and the others carry on.
func (u *Uploader) Upload(files []File, h Handlers) *Batch {
	b := &Batch{done: make(chan struct{}), pending: len(files)}
	if len(files) == 0 {
		u.dispatch(func() { b.finish(h) })
		return b
	}
	u.logMessage("Uploading %d file(s)", len(files))

	if u.ordered {
		go u.runOrdered(files, h, b)
		return b
	}
	for _, f := range files {
		go func(f File) {
			r := u.decode(f)
			u.dispatch(func() {
				b.deliver(r, h)
				b.fileDone(h)
			})
		}(f)
	}
	return b
}

func (u *Uploader) runOrdered(files []File, h Handlers, b *Batch) {
	results := make([]result, len(files))
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			results[i] = u.decode(f)
		}(i, f)
	}
	wg.Wait()
	u.dispatch(func() {
		for _, r := range results {
			b.deliver(r, h)
			b.fileDone(h)
		}
	})
}

func (u *Uploader) decode(f File) result {
	d, err := u.decoder.Decode(f)
	if err != nil {
		u.logMessage("Upload failed for %s: %v", f.Name(), err)
		return result{err: &FileError{Name: f.Name(), Err: err}}
	}
	return result{item: NewItem(f, d)}
}

func (b *Batch) deliver(r result, h Handlers) {
	b.mu.Lock()
	if r.err != nil {
		b.summary.Failed++
	} else {
		b.summary.Added++
	}
	b.mu.Unlock()

	if r.err != nil {
		if h.Error != nil {
			h.Error(r.err)
		}
		return
	}
	if h.Item != nil {
		h.Item(r.item)
	}
}

func (b *Batch) fileDone(h Handlers) {
	b.mu.Lock()
	b.pending--
	last := b.pending == 0
	b.mu.Unlock()
	if last {
		b.finish(h)
	}
}

func (b *Batch) finish(h Handlers) {
	b.mu.Lock()
	s := b.summary
	b.mu.Unlock()
	if h.Done != nil {
		h.Done(s)
	}
	close(b.done)
}

func (u *Uploader) logMessage(format string, args ...interface{}) {
	if u.logger != nil {
		u.logger(fmt.Sprintf(format, args...))
	} else {
		log.Printf(format, args...)
	}
}
