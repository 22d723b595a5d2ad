// Package render composes the background image and the annotation layers into
// a device-pixel canvas.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"strconv"

	xdraw "golang.org/x/image/draw"

	"github.com/example/annotateshot/internal/annotation"
)

// Canvas is the drawing surface. Width and Height are logical pixels; Image
// holds Width*DPR by Height*DPR device pixels.
type Canvas struct {
	Image  *image.RGBA
	Width  int
	Height int
	DPR    float64
}

// NewCanvas allocates a transparent canvas.
func NewCanvas(w, h int, dpr float64) *Canvas {
	if dpr <= 0 {
		dpr = 1
	}
	dw := int(math.Round(float64(w) * dpr))
	dh := int(math.Round(float64(h) * dpr))
	return &Canvas{Image: image.NewRGBA(image.Rect(0, 0, dw, dh)), Width: w, Height: h, DPR: dpr}
}

// Clear resets every pixel to transparent.
func (c *Canvas) Clear() {
	draw.Draw(c.Image, c.Image.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// DeviceRect converts a logical rectangle to device pixels.
func (c *Canvas) DeviceRect(r image.Rectangle) image.Rectangle {
	r = r.Canon()
	return image.Rect(
		scaled(float64(r.Min.X), c.DPR), scaled(float64(r.Min.Y), c.DPR),
		scaled(float64(r.Max.X), c.DPR), scaled(float64(r.Max.Y), c.DPR),
	)
}

// MosaicRect pixelates the logical rectangle r in place.
func (c *Canvas) MosaicRect(r image.Rectangle) {
	Mosaic(c.Image, c.DeviceRect(r), c.block(), nil)
}

func (c *Canvas) block() int {
	return max(1, scaled(MosaicBlock, c.DPR))
}

// DrawBackground scales img to fill the whole canvas.
func (c *Canvas) DrawBackground(img image.Image) {
	if img == nil {
		return
	}
	xdraw.ApproxBiLinear.Scale(c.Image, c.Image.Bounds(), img, img.Bounds(), draw.Over, nil)
}

// Render clears c and draws the visible layers bottom to top. Annotations that
// have no layer entry are drawn last so state saved before layers existed
// still shows up.
func Render(c *Canvas, background image.Image, s *annotation.Store) {
	c.Clear()
	for _, l := range s.Layers() {
		if !l.Visible {
			continue
		}
		if l.Background {
			c.DrawBackground(background)
			continue
		}
		c.DrawAnnotation(l.Annotation)
	}
	for _, a := range s.Untracked() {
		c.DrawAnnotation(a)
	}
}

// DrawAnnotation dispatches on the annotation kind.
func (c *Canvas) DrawAnnotation(a *annotation.Annotation) {
	switch p := a.Payload.(type) {
	case *annotation.Number:
		c.drawNumber(p, a.Color, a.Size)
	case *annotation.Text:
		c.drawText(p, a.Color, a.Size)
	case *annotation.Emoji:
		c.drawEmoji(p, a.Color, a.Size)
	case *annotation.Shape:
		c.drawShape(p, a.Color, a.Size)
	}
}

func (c *Canvas) pt(x, y float64) (float64, float64) {
	return x * c.DPR, y * c.DPR
}

func (c *Canvas) drawNumber(p *annotation.Number, col color.RGBA, size int) {
	cx, cy := c.pt(p.X, p.Y)
	r := float64(size) * c.DPR
	FillDisc(c.Image, cx, cy, r, col)
	if err := DrawCentered(c.Image, int(math.Round(cx)), int(math.Round(cy)), strconv.Itoa(p.Display), color.White, Bold, r); err != nil {
		log.Printf("draw number: %v", err)
	}
}

func (c *Canvas) drawText(p *annotation.Text, col color.RGBA, size int) {
	x, y := c.pt(p.X, p.Y)
	if err := DrawText(c.Image, int(math.Round(x)), int(math.Round(y)), p.Text, col, Regular, float64(size)*c.DPR); err != nil {
		log.Printf("draw text: %v", err)
	}
}

// drawEmoji draws the glyph at twice the annotation size. Glyphs the bundled
// font cannot draw become a star marker of the same footprint.
func (c *Canvas) drawEmoji(p *annotation.Emoji, col color.RGBA, size int) {
	x, y := c.pt(p.X, p.Y)
	if !HasGlyphs(Regular, p.Glyph) {
		FillStar(c.Image, x, y, float64(size)*c.DPR, col)
		return
	}
	if err := DrawCentered(c.Image, int(math.Round(x)), int(math.Round(y)), p.Glyph, col, Regular, 2*float64(size)*c.DPR); err != nil {
		log.Printf("draw emoji: %v", err)
	}
}

func (c *Canvas) drawShape(p *annotation.Shape, col color.RGBA, size int) {
	lw := p.LineWidth
	if lw <= 0 {
		lw = max(1, size/5)
	}
	thick := max(1, scaled(float64(lw), c.DPR))
	x0, y0 := c.pt(p.StartX, p.StartY)
	x1, y1 := c.pt(p.EndX, p.EndY)

	switch p.Shape {
	case annotation.ShapeArrow:
		DrawArrow(c.Image, int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)), col, thick)
	case annotation.ShapeRectangle:
		r := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1))).Canon()
		c.fill(p.Fill, r, nil, col)
		DrawRect(c.Image, r, col, thick)
	case annotation.ShapeCircle:
		radius := math.Hypot(x1-x0, y1-y0)
		box := image.Rect(
			int(math.Floor(x0-radius)), int(math.Floor(y0-radius)),
			int(math.Ceil(x0+radius))+1, int(math.Ceil(y0+radius))+1,
		)
		if p.Fill != annotation.FillNone {
			area := box.Intersect(c.Image.Bounds())
			if !area.Empty() {
				c.fill(p.Fill, area, DiscMask(area, x0, y0, radius), col)
			}
		}
		DrawCircle(c.Image, int(math.Round(x0)), int(math.Round(y0)), int(math.Round(radius)), col, thick)
	}
}

// fill paints the interior of r, restricted to mask when one is given.
func (c *Canvas) fill(mode annotation.FillMode, r image.Rectangle, mask *image.Alpha, col color.RGBA) {
	var m image.Image
	if mask != nil {
		m = mask
	}
	switch mode {
	case annotation.FillSolid:
		clip := r.Intersect(c.Image.Bounds())
		if clip.Empty() {
			return
		}
		if m == nil {
			draw.Draw(c.Image, clip, image.NewUniform(col), image.Point{}, draw.Over)
		} else {
			draw.DrawMask(c.Image, clip, image.NewUniform(col), image.Point{}, m, clip.Min, draw.Over)
		}
	case annotation.FillBlur:
		tint := color.RGBA{col.R / 4, col.G / 4, col.B / 4, 64}
		Blur(c.Image, r, max(1, scaled(blurRadius, c.DPR)), tint, m)
	case annotation.FillMosaic:
		Mosaic(c.Image, r, c.block(), m)
	}
}
