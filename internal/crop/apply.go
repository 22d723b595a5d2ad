package crop

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f32"

	"github.com/example/annotateshot/internal/render"
)

// Result is the outcome of Apply.
type Result struct {
	// Image is the new working image. Its size is the selection size, plus
	// ShadowMargin on each axis for torn crops.
	Image *image.RGBA
	// Source is the selection mapped into source image pixels.
	Source image.Rectangle
	// Path is the torn outline, nil for basic crops.
	Path []f32.Vec2
}

// SourceRect maps a selection in canvas pixels to src pixels using the scale
// ratio between the image and the canvas it is displayed on.
func SourceRect(src image.Rectangle, canvasW, canvasH int, sel image.Rectangle) image.Rectangle {
	sx := float64(src.Dx()) / float64(canvasW)
	sy := float64(src.Dy()) / float64(canvasH)
	r := image.Rect(
		int(math.Round(float64(sel.Min.X)*sx)), int(math.Round(float64(sel.Min.Y)*sy)),
		int(math.Round(float64(sel.Max.X)*sx)), int(math.Round(float64(sel.Max.Y)*sy)),
	).Add(src.Min)
	return r.Intersect(src)
}

// Apply crops src, displayed on a canvasW by canvasH canvas, to the selection
// sel given in canvas pixels. The part of sel outside the canvas is dropped
// before the minimum size is checked.
func Apply(src image.Image, canvasW, canvasH int, sel image.Rectangle, style Style) (Result, error) {
	if src == nil {
		return Result{}, fmt.Errorf("crop: no image")
	}
	if canvasW <= 0 || canvasH <= 0 {
		return Result{}, fmt.Errorf("crop: invalid canvas %dx%d", canvasW, canvasH)
	}
	sel = sel.Canon().Intersect(image.Rect(0, 0, canvasW, canvasH))
	if sel.Dx() < MinSize || sel.Dy() < MinSize {
		return Result{}, ErrTooSmall
	}
	srcRect := SourceRect(src.Bounds(), canvasW, canvasH, sel)

	w, h := sel.Dx(), sel.Dy()
	content := image.NewRGBA(image.Rect(0, 0, w, h))
	if srcRect.Dx() == w && srcRect.Dy() == h {
		draw.Draw(content, content.Bounds(), src, srcRect.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(content, content.Bounds(), src, srcRect, draw.Src, nil)
	}
	if style != Torn {
		return Result{Image: content, Source: srcRect}, nil
	}

	path := TornEdgePath(w, h)
	out := image.NewRGBA(image.Rect(0, 0, w+ShadowMargin, h+ShadowMargin))
	clip := render.PolygonMask(out.Bounds(), path)
	render.DropShadow(out, clip, render.TornShadowOptions())
	draw.DrawMask(out, content.Bounds(), content, image.Point{}, clip, image.Point{}, draw.Over)
	render.DrawPolyline(out, path, true, color.Black, 1)
	return Result{Image: out, Source: srcRect, Path: path}, nil
}
