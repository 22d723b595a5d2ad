package annotation

import (
	"math"
	"unicode/utf8"
)

// HitTolerance is the margin in canvas pixels around shape outlines that still
// counts as a hit.
const HitTolerance = 5

// textWidthFactor approximates the advance of one character as a fraction of
// the font size. Text hits use this estimate instead of real glyph metrics.
const textWidthFactor = 0.6

// HitTest returns the topmost visible annotation containing (x, y), or nil.
// Later annotations are drawn on top, so the scan runs newest first.
func (s *Store) HitTest(x, y float64) *Annotation {
	for i := len(s.items) - 1; i >= 0; i-- {
		a := s.items[i]
		if a.Layer.Tracked && !a.Layer.Visible {
			continue
		}
		if Contains(a, x, y) {
			return a
		}
	}
	return nil
}

// Contains reports whether (x, y) falls within the visual bounds of a.
func Contains(a *Annotation, x, y float64) bool {
	size := float64(a.Size)
	switch p := a.Payload.(type) {
	case *Number:
		return math.Hypot(x-p.X, y-p.Y) <= size
	case *Shape:
		return shapeContains(p, x, y)
	case *Text:
		w := float64(utf8.RuneCountInString(p.Text)) * size * textWidthFactor
		return x >= p.X && x <= p.X+w && y >= p.Y && y <= p.Y+size
	case *Emoji:
		return math.Abs(x-p.X) <= size && math.Abs(y-p.Y) <= size
	}
	return false
}

func shapeContains(p *Shape, x, y float64) bool {
	const t = HitTolerance
	minX, maxX := math.Min(p.StartX, p.EndX), math.Max(p.StartX, p.EndX)
	minY, maxY := math.Min(p.StartY, p.EndY), math.Max(p.StartY, p.EndY)
	switch p.Shape {
	case ShapeRectangle:
		inOuter := x >= minX-t && x <= maxX+t && y >= minY-t && y <= maxY+t
		inInner := x > minX+t && x < maxX-t && y > minY+t && y < maxY-t
		return inOuter && !inInner
	case ShapeCircle:
		r := math.Hypot(p.EndX-p.StartX, p.EndY-p.StartY)
		d := math.Hypot(x-p.StartX, y-p.StartY)
		return d >= r-t && d <= r+t
	case ShapeArrow:
		return x >= minX-t && x <= maxX+t && y >= minY-t && y <= maxY+t
	}
	return false
}
