package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMedia(t *testing.T) {
	tests := []struct {
		name  string
		media bool
		video bool
	}{
		{"beach.PNG", true, false},
		{"beach.jpeg", true, false},
		{"scan.bmp", true, false},
		{"beach.day.webp", true, false},
		{"clip.mp4", true, true},
		{"clip.WEBM", true, true},
		{"clip.mkv", true, true},
		{"notes.txt", false, false},
		{"README", false, false},
		{".gif", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.media, IsMedia(tt.name))
			assert.Equal(t, tt.video, isVideo(tt.name))
		})
	}
}

// writeTree creates files relative to root; size 0 makes an empty file.
func writeTree(t *testing.T, root string, files map[string]int) {
	t.Helper()
	for rel, size := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	}
}

func TestRunStreamsMediaOnly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{
		"a.png":                 8,
		"trips/clip.mp4":        8,
		"trips/notes.md":        8,
		"trips/2024/b.JPG":      8,
		"empty.gif":             0,
		"docs/readme.txt":       8,
		"trips/2024/raw/c.webp": 8,
	})

	var got []string
	timeout := time.After(5 * time.Second)
	items := Run(root, func(msg string) { t.Log(msg) })
	for done := false; !done; {
		select {
		case item, ok := <-items:
			if !ok {
				done = true
				continue
			}
			require.NotNil(t, item.Info)
			assert.True(t, filepath.IsAbs(item.Path))
			assert.Positive(t, item.Info.Size())
			rel, err := filepath.Rel(root, item.Path)
			require.NoError(t, err)
			got = append(got, filepath.ToSlash(rel))
		case <-timeout:
			t.Fatal("scan did not finish")
		}
	}

	assert.ElementsMatch(t, []string{"a.png", "trips/clip.mp4", "trips/2024/b.JPG", "trips/2024/raw/c.webp"}, got)
}

func TestCollectSortsByPath(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{"z.png": 4, "m.mov": 4, "a/b.png": 4})

	items := Collect(root, nil)
	require.Len(t, items, 3)
	assert.Equal(t, filepath.Join(root, "a", "b.png"), items[0].Path)
	assert.Equal(t, filepath.Join(root, "m.mov"), items[1].Path)
	assert.Equal(t, filepath.Join(root, "z.png"), items[2].Path)
}

func TestCollectMissingDir(t *testing.T) {
	var logged []string
	items := Collect(filepath.Join(t.TempDir(), "nope"), func(msg string) { logged = append(logged, msg) })
	assert.Empty(t, items)
	assert.NotEmpty(t, logged)
}

func TestNewFileItem(t *testing.T) {
	info, err := os.Stat(".")
	require.NoError(t, err)
	item := NewFileItem("photos/a.png", info)
	assert.Equal(t, "photos/a.png", item.Path)
	assert.Same(t, info, item.Info)
}
