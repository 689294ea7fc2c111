package input

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fygallery/internal/gallery"
)

type nullSurface struct{}

func (nullSurface) ShowItem(gallery.MediaItem, string) {}
func (nullSurface) ApplyFilter(string)                 {}
func (nullSurface) Clear()                             {}
func (nullSurface) LockScroll(bool)                    {}

func newViewer(t *testing.T, n int) *gallery.Viewer {
	t.Helper()
	items := make([]gallery.MediaItem, n)
	for i := range items {
		items[i] = gallery.NewMediaItem("src", "item", "nature", gallery.KindImage)
	}
	return gallery.NewViewer(gallery.NewStore(items...), nullSurface{})
}

func TestKeyDispatcherIgnoresKeysWhileClosed(t *testing.T) {
	v := newViewer(t, 3)
	d := NewKeyDispatcher(v)

	for _, key := range []fyne.KeyName{fyne.KeyEscape, fyne.KeyLeft, fyne.KeyRight} {
		handled, err := d.Dispatch(key)
		require.NoError(t, err)
		assert.False(t, handled, "key %s", key)
	}
	assert.False(t, v.IsOpen())
}

func TestKeyDispatcherNavigation(t *testing.T) {
	v := newViewer(t, 3)
	d := NewKeyDispatcher(v)
	require.NoError(t, v.Open(0))

	handled, err := d.Dispatch(fyne.KeyLeft)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, 2, v.Position())

	_, err = d.Dispatch(fyne.KeyRight)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Position())

	handled, err = d.Dispatch(fyne.KeyA)
	require.NoError(t, err)
	assert.False(t, handled)

	handled, err = d.Dispatch(fyne.KeyEscape)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.False(t, v.IsOpen())
}

func TestSwipe(t *testing.T) {
	tests := []struct {
		name       string
		start, end float32
		want       Swipe
		wantPos    int
	}{
		{"left swipe is next", 300, 200, SwipeLeft, 2},
		{"right swipe is prev", 200, 300, SwipeRight, 0},
		{"exactly threshold is ignored", 300, 250, SwipeNone, 1},
		{"short swipe is ignored", 300, 280, SwipeNone, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViewer(t, 4)
			require.NoError(t, v.Open(1))
			st := NewSwipeTracker(v, 50)

			st.Start(tt.start)
			got, err := st.End(tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPos, v.Position())
		})
	}
}

func TestSwipeWhileClosed(t *testing.T) {
	v := newViewer(t, 2)
	st := NewSwipeTracker(v, 0)
	assert.Equal(t, float32(DefaultSwipeThreshold), st.Threshold())

	st.Start(300)
	got, err := st.End(100)
	require.NoError(t, err)
	assert.Equal(t, SwipeNone, got)
	assert.False(t, v.IsOpen())

	got, err = st.End(100)
	require.NoError(t, err)
	assert.Equal(t, SwipeNone, got, "end without start")
}
