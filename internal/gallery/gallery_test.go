package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSurface records what the viewer asked the host to do.
type fakeSurface struct {
	shown       []MediaItem
	filters     []string
	cleared     int
	scrollLocks []bool
}

func (f *fakeSurface) ShowItem(item MediaItem, displayFilter string) {
	f.shown = append(f.shown, item)
	f.filters = append(f.filters, displayFilter)
}

func (f *fakeSurface) ApplyFilter(displayFilter string) {
	f.filters = append(f.filters, displayFilter)
}

func (f *fakeSurface) Clear() { f.cleared++ }

func (f *fakeSurface) LockScroll(locked bool) { f.scrollLocks = append(f.scrollLocks, locked) }

func (f *fakeSurface) last() MediaItem { return f.shown[len(f.shown)-1] }

var (
	itemA = NewMediaItem("a.jpg", "A", "nature", KindImage)
	itemB = NewMediaItem("b.jpg", "B", "city", KindImage)
	itemC = NewMediaItem("c.jpg", "C", "nature", KindImage)
	itemV = NewMediaItem("v.mp4", "V", "city", KindVideo)
)

func TestKindFromMediaType(t *testing.T) {
	tests := []struct {
		mediaType string
		want      Kind
	}{
		{"image/png", KindImage},
		{"IMAGE/JPEG", KindImage},
		{"video/mp4", KindVideo},
		{"application/octet-stream", KindVideo},
		{"", KindVideo},
	}
	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.want, KindFromMediaType(tt.mediaType))
		})
	}
}

func TestTitleFromFilename(t *testing.T) {
	assert.Equal(t, "holiday", TitleFromFilename("holiday.jpg"))
	assert.Equal(t, "beach", TitleFromFilename("beach.day.png"))
	assert.Equal(t, "noext", TitleFromFilename("noext"))
	assert.Equal(t, "", TitleFromFilename(".hidden"))
}

func TestParseSelector(t *testing.T) {
	assert.True(t, ParseSelector("all").IsAll())
	assert.True(t, ParseSelector("").IsAll())
	assert.True(t, ParseSelector("videos").Match(itemV))
	assert.False(t, ParseSelector("videos").Match(itemA))
	assert.True(t, ParseSelector("nature").Match(itemA))
	assert.False(t, ParseSelector("nature").Match(itemB))
	assert.Equal(t, "videos", ParseSelector("videos").Value())
	assert.Equal(t, "nature", ParseSelector("nature").Value())
}

func TestStoreFilterAllKeepsInsertionOrder(t *testing.T) {
	s := NewStore(itemA, itemB)
	s.Append(itemC)
	s.Append(itemV)

	view := s.Filter(All())
	require.Len(t, view, s.Len())
	assert.Equal(t, []MediaItem{itemA, itemB, itemC, itemV}, view)
}

func TestStoreFilterByCategory(t *testing.T) {
	s := NewStore(itemA, itemB, itemC, itemV)

	view := s.Filter(ByCategory("nature"))
	assert.Equal(t, []MediaItem{itemA, itemC}, view)
	for _, item := range view {
		assert.Equal(t, "nature", item.Category)
	}
	assert.Len(t, s.Items(), 4, "filter must not touch the collection")

	videos := s.Filter(ByKind(KindVideo))
	assert.Equal(t, []MediaItem{itemV}, videos)
}

func TestStoreAppendReappliesSelector(t *testing.T) {
	s := NewStore(itemA, itemB)
	s.Filter(ByCategory(UserUploadCategory))
	assert.Equal(t, 0, s.ViewLen())

	up := NewMediaItem("data:image/png;base64,AA==", "mine", UserUploadCategory, KindImage)
	s.Append(up)
	assert.Equal(t, []MediaItem{up}, s.Current())

	s.Append(itemC)
	assert.Equal(t, 1, s.ViewLen(), "non-matching append stays out of the view")
	assert.Equal(t, 4, s.Len())
}

func TestStoreCurrentIsSnapshot(t *testing.T) {
	s := NewStore(itemA)
	view := s.Current()
	view[0] = itemB
	got, ok := s.ViewItem(0)
	require.True(t, ok)
	assert.Equal(t, itemA, got)
}

func TestStoreCategoriesAndReset(t *testing.T) {
	s := NewStore(itemA, itemB, itemC)
	assert.Equal(t, []string{"nature", "city"}, s.Categories())

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })
	s.Filter(ByCategory("city"))
	s.Reset(itemV)
	assert.Equal(t, 2, calls)
	assert.True(t, s.Selector().IsAll())
	assert.Equal(t, []MediaItem{itemV}, s.Current())

	unsubscribe()
	s.Append(itemA)
	assert.Equal(t, 2, calls)
}

func TestViewerScenario(t *testing.T) {
	s := NewStore(itemA, itemB, itemC)
	surface := &fakeSurface{}
	v := NewViewer(s, surface)

	view := s.Filter(ByCategory("nature"))
	require.Equal(t, []MediaItem{itemA, itemC}, view)

	require.NoError(t, v.Open(1))
	assert.Equal(t, 1, v.Position())
	assert.Equal(t, itemC, surface.last())

	require.NoError(t, v.Next())
	assert.Equal(t, 0, v.Position())
	assert.Equal(t, itemA, surface.last())

	require.NoError(t, v.Prev())
	assert.Equal(t, 1, v.Position())
	require.NoError(t, v.Prev())
	assert.Equal(t, 0, v.Position())
}

func TestViewerCyclicClosure(t *testing.T) {
	s := NewStore(itemA, itemB, itemC, itemV)
	v := NewViewer(s, &fakeSurface{})
	n := s.ViewLen()

	for start := 0; start < n; start++ {
		require.NoError(t, v.Open(start))
		for i := 0; i < n; i++ {
			require.NoError(t, v.Next())
		}
		assert.Equal(t, start, v.Position(), "next x%d from %d", n, start)
		for i := 0; i < n; i++ {
			require.NoError(t, v.Prev())
		}
		assert.Equal(t, start, v.Position(), "prev x%d from %d", n, start)
	}
}

func TestViewerOpenOutOfRange(t *testing.T) {
	s := NewStore(itemA)
	surface := &fakeSurface{}
	v := NewViewer(s, surface)

	assert.ErrorIs(t, v.Open(1), ErrIndexOutOfRange)
	assert.ErrorIs(t, v.Open(-1), ErrIndexOutOfRange)
	assert.False(t, v.IsOpen())
	assert.Empty(t, surface.shown)
}

func TestViewerCloseClearsDisplayFilter(t *testing.T) {
	s := NewStore(itemA, itemB)
	surface := &fakeSurface{}
	v := NewViewer(s, surface)

	require.NoError(t, v.Open(0))
	require.NoError(t, v.SetDisplayFilter("grayscale"))
	assert.Equal(t, "grayscale", v.DisplayFilter())
	assert.Equal(t, 0, v.Position())

	v.Close()
	assert.False(t, v.IsOpen())
	assert.Equal(t, "", v.DisplayFilter())
	assert.Equal(t, 1, surface.cleared)
	assert.Equal(t, []bool{true, false}, surface.scrollLocks)

	v.Close()
	assert.Equal(t, 1, surface.cleared, "second close is a no-op")
}

func TestViewerOpenResetsDisplayFilter(t *testing.T) {
	s := NewStore(itemA, itemB)
	surface := &fakeSurface{}
	v := NewViewer(s, surface)

	require.NoError(t, v.Open(0))
	require.NoError(t, v.SetDisplayFilter("sepia"))
	require.NoError(t, v.Open(1))
	assert.Equal(t, "", v.DisplayFilter())
	assert.Equal(t, []bool{true}, surface.scrollLocks, "reopen does not lock twice")
}

func TestViewerNavigationWhileClosed(t *testing.T) {
	v := NewViewer(NewStore(itemA), &fakeSurface{})
	assert.ErrorIs(t, v.Next(), ErrViewerClosed)
	assert.ErrorIs(t, v.Prev(), ErrViewerClosed)
	assert.ErrorIs(t, v.SetDisplayFilter("blur"), ErrViewerClosed)
	_, ok := v.Current()
	assert.False(t, ok)
}

func TestViewerClosesWhenViewEmpties(t *testing.T) {
	s := NewStore(itemA, itemB)
	surface := &fakeSurface{}
	v := NewViewer(s, surface)

	require.NoError(t, v.Open(1))
	s.Filter(ByKind(KindVideo))
	assert.False(t, v.IsOpen())
	assert.Equal(t, 1, surface.cleared)
	assert.ErrorIs(t, v.Next(), ErrViewerClosed)
}

func TestViewerClampsOnSmallerView(t *testing.T) {
	s := NewStore(itemA, itemB, itemC)
	surface := &fakeSurface{}
	v := NewViewer(s, surface)

	require.NoError(t, v.Open(2))
	s.Filter(ByCategory("city"))
	require.True(t, v.IsOpen())
	assert.Equal(t, 0, v.Position())
	assert.Equal(t, itemB, surface.last())

	renders := len(surface.shown)
	s.Append(itemV)
	assert.Equal(t, renders, len(surface.shown), "unchanged item is not re-rendered")
}

func TestViewerOnChange(t *testing.T) {
	s := NewStore(itemA, itemB)
	v := NewViewer(s, &fakeSurface{})
	changes := 0
	v.OnChange = func() { changes++ }

	require.NoError(t, v.Open(0))
	require.NoError(t, v.Next())
	require.NoError(t, v.SetDisplayFilter("invert"))
	v.Close()
	assert.Equal(t, 4, changes)

	v.Detach()
	s.Append(itemC)
	assert.Equal(t, 4, changes)
}

func TestGridRender(t *testing.T) {
	var opened []int
	var hooked []string
	g := &Grid[string]{
		Build: func(tile Tile, open func()) string {
			open()
			return tile.Title + ":" + tile.Caption()
		},
		AfterRender: func(tiles []Tile, nodes []string) {
			hooked = append(hooked, nodes...)
		},
	}

	nodes := g.Render([]MediaItem{itemA, itemV}, func(i int) { opened = append(opened, i) })
	assert.Equal(t, []string{"A:nature", "V:Video"}, nodes)
	assert.Equal(t, []int{0, 1}, opened)
	assert.Equal(t, nodes, hooked)

	again := g.Render([]MediaItem{itemA, itemV}, func(int) {})
	assert.Equal(t, nodes, again)
}

func TestBuildTilesIndex(t *testing.T) {
	tiles := BuildTiles([]MediaItem{itemC, itemA})
	require.Len(t, tiles, 2)
	assert.Equal(t, Tile{Source: "c.jpg", Title: "C", Category: "nature", Kind: KindImage, Index: 0}, tiles[0])
	assert.Equal(t, 1, tiles[1].Index)
}
