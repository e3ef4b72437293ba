package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"fyne.io/fyne/v2"
)

// IconKind selects the tint of a generated application icon.
type IconKind string

const (
	IconApp        IconKind = "app"
	IconWork       IconKind = "work"
	IconShortBreak IconKind = "short_break"
	IconLongBreak  IconKind = "long_break"
	IconPaused     IconKind = "paused"
)

const iconSize = 64

var iconColors = map[IconKind]color.NRGBA{
	IconApp:        {R: 0xc0, G: 0x84, B: 0xfc, A: 0xff},
	IconWork:       {R: 0xf4, G: 0x72, B: 0xb6, A: 0xff},
	IconShortBreak: {R: 0x2d, G: 0xd4, B: 0xbf, A: 0xff},
	IconLongBreak:  {R: 0x81, G: 0x8c, B: 0xf8, A: 0xff},
	IconPaused:     {R: 0x94, G: 0xa3, B: 0xb8, A: 0xff},
}

var iconCache sync.Map

// Icon returns a ring-shaped PNG resource tinted for the given kind.
func Icon(kind IconKind) (fyne.Resource, error) {
	if cached, ok := iconCache.Load(kind); ok {
		return cached.(fyne.Resource), nil
	}

	tint, ok := iconColors[kind]
	if !ok {
		return nil, fmt.Errorf("load icon %q: unknown kind", kind)
	}

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, drawRing(iconSize, tint)); err != nil {
		return nil, fmt.Errorf("encode icon %q: %w", kind, err)
	}

	resource := fyne.NewStaticResource(fmt.Sprintf("lofitimer-%s.png", kind), encoded.Bytes())
	actual, _ := iconCache.LoadOrStore(kind, resource)
	return actual.(fyne.Resource), nil
}

// MustIcon returns an icon resource or panics on error.
func MustIcon(kind IconKind) fyne.Resource {
	resource, err := Icon(kind)
	if err != nil {
		panic(err)
	}
	return resource
}

// drawRing paints a thick anti-aliased ring with a filled dot in the middle.
func drawRing(size int, tint color.NRGBA) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	outer := center - 2
	inner := outer * 0.68
	dot := outer * 0.22

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			distance := math.Hypot(float64(x)+0.5-center, float64(y)+0.5-center)
			coverage := math.Max(
				bandCoverage(distance, inner, outer),
				bandCoverage(distance, -1, dot),
			)
			if coverage <= 0 {
				continue
			}
			pixel := tint
			pixel.A = uint8(float64(tint.A) * coverage)
			canvas.SetNRGBA(x, y, pixel)
		}
	}
	return canvas
}

func bandCoverage(distance, from, to float64) float64 {
	coverage := math.Min(distance-from+0.5, to-distance+0.5)
	return math.Max(0, math.Min(1, coverage))
}
