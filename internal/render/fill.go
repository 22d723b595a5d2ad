package render

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
)

// MosaicBlock is the edge length of one mosaic cell in logical pixels.
const MosaicBlock = 10

// blurRadius is the box blur radius of the blur fill in logical pixels.
const blurRadius = 6

var fallbackFill = color.RGBA{128, 128, 128, 128}

// Mosaic pixelates the device rectangle r of dst in square blocks, sampling
// the centre pixel of each block from what is already drawn. When mask is
// non-nil only masked pixels change. The sampling area is clamped to dst, so
// a rectangle fully outside the image is a no-op. A failure while sampling
// is logged and replaced with a flat translucent fill.
func Mosaic(dst *image.RGBA, r image.Rectangle, block int, mask image.Image) {
	clip := r.Canon().Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	if block < 1 {
		block = 1
	}
	defer func() {
		if p := recover(); p != nil {
			log.Printf("mosaic: %v", p)
			drawMasked(dst, clip, image.NewUniform(fallbackFill), clip.Min, mask)
		}
	}()

	cells := image.NewRGBA(clip)
	origin := r.Canon().Min
	startX := origin.X + (clip.Min.X-origin.X)/block*block
	startY := origin.Y + (clip.Min.Y-origin.Y)/block*block
	for by := startY; by < clip.Max.Y; by += block {
		for bx := startX; bx < clip.Max.X; bx += block {
			cell := image.Rect(bx, by, bx+block, by+block).Intersect(clip)
			if cell.Empty() {
				continue
			}
			c := cell.Min.Add(cell.Max).Div(2)
			sample := dst.RGBAAt(c.X, c.Y)
			draw.Draw(cells, cell, image.NewUniform(sample), image.Point{}, draw.Src)
		}
	}
	drawMasked(dst, clip, cells, clip.Min, mask)
}

// Blur box-blurs the device rectangle r of dst and washes it with tint.
func Blur(dst *image.RGBA, r image.Rectangle, radius int, tint color.Color, mask image.Image) {
	clip := r.Canon().Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	region := image.NewRGBA(clip)
	draw.Draw(region, clip, dst, clip.Min, draw.Src)
	boxBlur(region.Pix, region.Stride, clip.Dx(), clip.Dy(), 4, radius)
	if tint != nil {
		draw.Draw(region, clip, image.NewUniform(tint), image.Point{}, draw.Over)
	}
	drawMasked(dst, clip, region, clip.Min, mask)
}

func drawMasked(dst *image.RGBA, r image.Rectangle, src image.Image, sp image.Point, mask image.Image) {
	if mask == nil {
		draw.Draw(dst, r, src, sp, draw.Src)
		return
	}
	draw.DrawMask(dst, r, src, sp, mask, r.Min, draw.Over)
}

func scaled(v, dpr float64) int {
	return int(math.Round(v * dpr))
}
