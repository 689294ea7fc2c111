// Package effects implements the display filters the lightbox can apply to
// the shown image. A filter only changes how the image looks, never the item.
package effects

import (
	"image"
	"sort"

	"github.com/disintegration/gift"
)

// None is the name that leaves the image untouched.
const None = "none"

const (
	brightnessPercent = 30
	contrastPercent   = 50
	blurSigma         = 4
)

var registry = map[string]*gift.GIFT{
	"grayscale":  gift.New(gift.Grayscale()),
	"sepia":      gift.New(gift.Sepia(100)),
	"invert":     gift.New(gift.Invert()),
	"blur":       gift.New(gift.GaussianBlur(blurSigma)),
	"brightness": gift.New(gift.Brightness(brightnessPercent)),
	"contrast":   gift.New(gift.Contrast(contrastPercent)),
}

// Names lists the registered filter names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name has an implementation. "" and None count as known.
func Known(name string) bool {
	if name == "" || name == None {
		return true
	}
	_, ok := registry[name]
	return ok
}

// Apply runs the named filter. Unknown names, "" and None return src as is.
func Apply(name string, src image.Image) image.Image {
	if src == nil {
		return nil
	}
	g, ok := registry[name]
	if !ok {
		return src
	}
	return draw(g, src)
}

func draw(g *gift.GIFT, src image.Image) image.Image {
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}
