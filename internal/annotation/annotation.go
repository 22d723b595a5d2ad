// Package annotation holds the marks a user places on a screenshot and the
// ordered store that owns them for the lifetime of one loaded image.
package annotation

import (
	"fmt"
	"image/color"
	"strings"
)

// Kind identifies the variant carried by an Annotation.
type Kind int

const (
	KindNumber Kind = iota
	KindShape
	KindText
	KindEmoji
)

var kindNames = [...]string{"number", "shape", "text", "emoji"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a persisted type tag back into a Kind.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, s) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown annotation type %q", s)
}

// ShapeKind selects the geometry drawn by a Shape annotation.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeCircle
	ShapeArrow
)

var shapeNames = [...]string{"rectangle", "circle", "arrow"}

func (s ShapeKind) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("shape(%d)", int(s))
	}
	return shapeNames[s]
}

// ParseShape accepts the persisted shape names plus a couple of short aliases.
func ParseShape(s string) (ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect":
		return ShapeRectangle, nil
	case "circle":
		return ShapeCircle, nil
	case "arrow":
		return ShapeArrow, nil
	}
	return 0, fmt.Errorf("unknown shape %q", s)
}

// FillMode controls how the interior of a rectangle or circle is painted.
type FillMode int

const (
	FillNone FillMode = iota
	FillSolid
	FillBlur
	FillMosaic
)

var fillNames = [...]string{"none", "solid", "blur", "mosaic"}

func (f FillMode) String() string {
	if f < 0 || int(f) >= len(fillNames) {
		return fmt.Sprintf("fill(%d)", int(f))
	}
	return fillNames[f]
}

// ParseFill converts a fill name into a FillMode. An empty string means none.
func ParseFill(s string) (FillMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FillNone, nil
	}
	for i, n := range fillNames {
		if n == s {
			return FillMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown fill type %q", s)
}

// Payload is implemented by the four annotation variants.
type Payload interface {
	Kind() Kind
	// Anchor returns the point a drag offset is measured against.
	Anchor() (x, y float64)
	// Translate moves every coordinate of the payload by (dx, dy).
	Translate(dx, dy float64)
	clone() Payload
}

// Number is a filled numbered badge centred at (X, Y).
type Number struct {
	X, Y    float64
	Display int
}

func (n *Number) Kind() Kind { return KindNumber }
func (n *Number) Anchor() (float64, float64) { return n.X, n.Y }
func (n *Number) Translate(dx, dy float64) {
	n.X += dx
	n.Y += dy
}
func (n *Number) clone() Payload {
	c := *n
	return &c
}

// Shape is a rectangle, circle or arrow spanning two points. For circles the
// start point is the centre and the distance to the end point is the radius.
type Shape struct {
	Shape                      ShapeKind
	Fill                       FillMode
	LineWidth                  int
	StartX, StartY, EndX, EndY float64
}

func (s *Shape) Kind() Kind { return KindShape }
func (s *Shape) Anchor() (float64, float64) { return s.StartX, s.StartY }
func (s *Shape) clone() Payload {
	c := *s
	return &c
}

func (s *Shape) Translate(dx, dy float64) {
	s.StartX += dx
	s.StartY += dy
	s.EndX += dx
	s.EndY += dy
}

// Text is a single line of text with its top-left corner at (X, Y).
type Text struct {
	X, Y float64
	Text string
}

func (t *Text) Kind() Kind { return KindText }
func (t *Text) Anchor() (float64, float64) { return t.X, t.Y }
func (t *Text) Translate(dx, dy float64) {
	t.X += dx
	t.Y += dy
}
func (t *Text) clone() Payload {
	c := *t
	return &c
}

// Emoji is a glyph centred at (X, Y).
type Emoji struct {
	X, Y  float64
	Glyph string
}

func (e *Emoji) Kind() Kind { return KindEmoji }
func (e *Emoji) Anchor() (float64, float64) { return e.X, e.Y }
func (e *Emoji) Translate(dx, dy float64) {
	e.X += dx
	e.Y += dy
}
func (e *Emoji) clone() Payload {
	c := *e
	return &c
}

// LayerMeta is the per-annotation layer information shown in the layer list.
// Tracked is false for annotations restored from state written before layers
// existed; those are still drawn by the renderer's legacy pass.
type LayerMeta struct {
	Visible bool
	Name    string
	Tracked bool
}

// Annotation is one user-placed mark.
type Annotation struct {
	ID      int64
	Color   color.RGBA
	Size    int
	Layer   LayerMeta
	Payload Payload
}

// Kind reports the variant of the payload.
func (a *Annotation) Kind() Kind { return a.Payload.Kind() }

// Clone returns a deep copy of a.
func (a *Annotation) Clone() *Annotation {
	c := *a
	if a.Payload != nil {
		c.Payload = a.Payload.clone()
	}
	return &c
}

// Anchor forwards to the payload.
func (a *Annotation) Anchor() (float64, float64) { return a.Payload.Anchor() }

// MoveTo places the payload anchor at (x, y), translating every point.
func (a *Annotation) MoveTo(x, y float64) {
	ax, ay := a.Payload.Anchor()
	a.Payload.Translate(x-ax, y-ay)
}
