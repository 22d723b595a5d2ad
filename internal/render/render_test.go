package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/example/annotateshot/internal/annotation"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 7), uint8(y * 5), uint8(x + y), 255})
		}
	}
	return img
}

func TestMosaicOutsideCanvasIsNoop(t *testing.T) {
	c := NewCanvas(50, 40, 1)
	c.DrawBackground(gradient(50, 40))
	before := append([]uint8(nil), c.Image.Pix...)
	for _, r := range []image.Rectangle{
		image.Rect(100, 100, 200, 200),
		image.Rect(-80, -80, -10, -10),
		image.Rect(60, 0, 90, 40),
	} {
		c.MosaicRect(r)
	}
	if !bytes.Equal(before, c.Image.Pix) {
		t.Fatal("mosaic outside canvas changed pixels")
	}
}

func TestMosaicFlattensBlocks(t *testing.T) {
	c := NewCanvas(40, 40, 1)
	c.DrawBackground(gradient(40, 40))
	untouched := c.Image.RGBAAt(25, 25)
	c.MosaicRect(image.Rect(0, 0, 20, 20))
	want := c.Image.RGBAAt(0, 0)
	for y := 0; y < MosaicBlock; y++ {
		for x := 0; x < MosaicBlock; x++ {
			if got := c.Image.RGBAAt(x, y); got != want {
				t.Fatalf("block not flat at (%d,%d): %+v vs %+v", x, y, got, want)
			}
		}
	}
	if c.Image.RGBAAt(0, 0) == c.Image.RGBAAt(10, 0) {
		t.Fatal("neighbouring blocks share a colour on a gradient")
	}
	if c.Image.RGBAAt(25, 25) != untouched {
		t.Fatal("pixels outside the rectangle changed")
	}
}

func TestMosaicClampsPartialOverlap(t *testing.T) {
	c := NewCanvas(30, 30, 2)
	c.DrawBackground(gradient(60, 60))
	c.MosaicRect(image.Rect(20, 20, 80, 80))
	if c.Image.Bounds() != image.Rect(0, 0, 60, 60) {
		t.Fatalf("canvas bounds changed: %v", c.Image.Bounds())
	}
}

func TestRenderSkipsHiddenLayers(t *testing.T) {
	s := annotation.NewStore(nil)
	s.Reset(true)
	red := color.RGBA{255, 0, 0, 255}
	a, _ := s.Add(&annotation.Number{X: 20, Y: 20, Display: 1}, red, 10)

	c := NewCanvas(40, 40, 1)
	Render(c, nil, s)

	if got := c.Image.RGBAAt(12, 20); got.R < 200 {
		t.Fatalf("expected red disc edge, got %+v", got)
	}
	s.SetVisible(a.ID, false)
	Render(c, nil, s)
	if got := c.Image.RGBAAt(12, 20); got.A != 0 {
		t.Fatalf("hidden layer drawn: %+v", got)
	}
}

func TestRenderBackgroundScaled(t *testing.T) {
	s := annotation.NewStore(nil)
	s.Reset(true)
	bg := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range bg.Pix {
		bg.Pix[i] = 255
	}
	c := NewCanvas(20, 20, 2)
	Render(c, bg, s)
	if got := c.Image.RGBAAt(39, 39); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("background not scaled to device size: %+v", got)
	}
	s.SetVisible(0, false)
	Render(c, bg, s)
	if got := c.Image.RGBAAt(5, 5); got.A != 0 {
		t.Fatalf("hidden background drawn: %+v", got)
	}
}

func TestRenderDrawsUntracked(t *testing.T) {
	s := annotation.NewStore(nil)
	s.Reset(true)
	legacy := &annotation.Annotation{
		Color:   color.RGBA{0, 255, 0, 255},
		Size:    2,
		Payload: &annotation.Shape{Shape: annotation.ShapeRectangle, Fill: annotation.FillSolid, StartX: 5, StartY: 5, EndX: 25, EndY: 25},
	}
	s.Import([]*annotation.Annotation{legacy})
	if len(s.Layers()) != 1 {
		t.Fatalf("legacy annotation should not have a layer")
	}
	c := NewCanvas(30, 30, 1)
	Render(c, nil, s)
	if got := c.Image.RGBAAt(15, 15); got.G != 255 {
		t.Fatalf("legacy annotation not drawn: %+v", got)
	}
}

func TestBlurFillTintsRegion(t *testing.T) {
	s := annotation.NewStore(nil)
	s.Reset(true)
	s.Add(&annotation.Shape{Shape: annotation.ShapeCircle, Fill: annotation.FillBlur, StartX: 30, StartY: 30, EndX: 45, EndY: 30}, color.RGBA{0, 0, 0, 255}, 2)
	bg := gradient(60, 60)
	plain := NewCanvas(60, 60, 1)
	plain.DrawBackground(bg)
	c := NewCanvas(60, 60, 1)
	Render(c, bg, s)
	if c.Image.RGBAAt(30, 30) == plain.Image.RGBAAt(30, 30) {
		t.Fatal("blur left the centre untouched")
	}
	if c.Image.RGBAAt(2, 2) != plain.Image.RGBAAt(2, 2) {
		t.Fatal("blur spilled outside the circle")
	}
}

func TestDiscMaskCoverage(t *testing.T) {
	r := image.Rect(0, 0, 21, 21)
	m := DiscMask(r, 10.5, 10.5, 8)
	if m.AlphaAt(10, 10).A != 255 {
		t.Fatalf("centre not covered: %d", m.AlphaAt(10, 10).A)
	}
	if m.AlphaAt(0, 0).A != 0 {
		t.Fatalf("corner covered: %d", m.AlphaAt(0, 0).A)
	}
}
