// Package scan operates on files in a directory and its subdirectories
package scan

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoggerFunc receives messages about skipped entries.
type LoggerFunc func(message string)

// FileItem represents a media file found during a scan.
type FileItem struct {
	Path string
	Info os.FileInfo
}

// FileItems is a slice of FileItem
type FileItems []FileItem

// NewFileItem creates a new FileItem
func NewFileItem(p string, info os.FileInfo) FileItem {
	return FileItem{
		Path: p,
		Info: info,
	}
}

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".bmp": true}

var videoExts = map[string]bool{".mp4": true, ".m4v": true, ".webm": true, ".mov": true, ".mkv": true, ".avi": true, ".ogv": true}

// isImage checks if a file name has an image extension
func isImage(n string) bool {
	return imageExts[strings.ToLower(filepath.Ext(n))]
}

// isVideo checks if a file name has a video extension
func isVideo(n string) bool {
	return videoExts[strings.ToLower(filepath.Ext(n))]
}

// IsMedia checks if a file is an image or a video the gallery can hold
func IsMedia(n string) bool {
	return isImage(n) || isVideo(n)
}

// Run walks dir recursively in the background and sends every non-empty media
// file on the returned channel, which is closed when the walk ends. Paths are
// absolute.
func Run(dir string, logger LoggerFunc) <-chan FileItem {
	out := make(chan FileItem)
	logf := func(format string, args ...interface{}) {
		if logger != nil {
			logger(fmt.Sprintf(format, args...))
		} else {
			log.Printf(format, args...)
		}
	}

	go func() {
		defer close(out)
		root, err := filepath.Abs(dir)
		if err != nil {
			logf("scan: cannot resolve %s: %v", dir, err)
			return
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped, the rest of the tree is still walked.
				logf("scan: skipping %s: %v", p, err)
				if d != nil && d.IsDir() && p != root {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !IsMedia(p) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				logf("scan: cannot stat %s: %v", p, err)
				return nil
			}
			if !info.Mode().IsRegular() || info.Size() == 0 {
				return nil
			}
			out <- NewFileItem(p, info)
			return nil
		})
		if err != nil {
			logf("scan: walk of %s failed: %v", root, err)
		}
	}()
	return out
}

// Collect runs a scan and returns the items sorted by path.
func Collect(dir string, logger LoggerFunc) FileItems {
	var items FileItems
	for item := range Run(dir, logger) {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items
}
