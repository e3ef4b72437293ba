package timerview

import (
	"math"

	"fyne.io/fyne/v2"
)

const (
	ringSegments = 60
	ringDiameter = float32(240)
	segmentSize  = float32(7)
)

// litSegments converts the stroke offset of a circular indicator into the
// number of segments that should be drawn as elapsed.
func litSegments(dashOffset, circumference float64, total int) int {
	if circumference <= 0 || total <= 0 {
		return 0
	}
	visible := (circumference - dashOffset) / circumference
	lit := int(math.Round(visible * float64(total)))
	if lit < 0 {
		return 0
	}
	if lit > total {
		return total
	}
	return lit
}

// segmentCenter returns the centre of segment index on a ring of the given
// radius, starting at twelve o'clock and running clockwise.
func segmentCenter(index, total int, center fyne.Position, radius float32) fyne.Position {
	angle := 2*math.Pi*float64(index)/float64(total) - math.Pi/2
	return fyne.NewPos(
		center.X+radius*float32(math.Cos(angle)),
		center.Y+radius*float32(math.Sin(angle)),
	)
}

// ringLayout places the first segments objects around a circle and centres
// every remaining object inside it.
type ringLayout struct {
	segments int
}

func (layout *ringLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	center := fyne.NewPos(size.Width/2, size.Height/2)
	radius := side/2 - segmentSize

	for index, object := range objects {
		if index < layout.segments {
			position := segmentCenter(index, layout.segments, center, radius)
			object.Resize(fyne.NewSize(segmentSize, segmentSize))
			object.Move(position.Subtract(fyne.NewPos(segmentSize/2, segmentSize/2)))
			continue
		}
		objectSize := object.MinSize()
		object.Resize(objectSize)
		object.Move(fyne.NewPos(center.X-objectSize.Width/2, center.Y-objectSize.Height/2))
	}
}

func (layout *ringLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	side := ringDiameter
	for index, object := range objects {
		if index < layout.segments {
			continue
		}
		inner := object.MinSize()
		if need := inner.Width + 4*segmentSize; need > side {
			side = need
		}
		if need := inner.Height + 4*segmentSize; need > side {
			side = need
		}
	}
	return fyne.NewSize(side, side)
}
