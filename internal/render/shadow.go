package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures a drop shadow cast by a mask.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// TornShadowOptions is the shadow painted under torn crops: a small offset,
// a light blur and roughly 30% black.
func TornShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  2,
		Offset:  image.Pt(5, 5),
		Opacity: 0.3,
	}
}

// DropShadow paints a blurred, offset copy of mask onto dst in black. The
// mask coordinates are in dst space before the offset is applied.
func DropShadow(dst *image.RGBA, mask *image.Alpha, opts ShadowOptions) {
	if dst == nil || mask == nil || mask.Bounds().Empty() || opts.Opacity <= 0 {
		return
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	padded := mask.Bounds().Inset(-radius)
	work := image.NewAlpha(padded)
	draw.Draw(work, mask.Bounds(), mask, mask.Bounds().Min, draw.Src)
	if radius > 0 {
		boxBlur(work.Pix, work.Stride, padded.Dx(), padded.Dy(), 1, radius)
	}

	target := padded.Add(opts.Offset)
	clip := target.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	shadowAlpha := uint8(opacity*255 + 0.5)
	draw.DrawMask(dst, clip, image.NewUniform(color.RGBA{0, 0, 0, shadowAlpha}), image.Point{}, work, clip.Min.Sub(opts.Offset), draw.Over)
}

// boxBlur blurs an interleaved w*h buffer in place using a separable box
// filter. channels is the number of bytes per pixel; every byte is blurred
// independently.
func boxBlur(pix []uint8, stride, w, h, channels, radius int) {
	if radius <= 0 || w <= 0 || h <= 0 {
		return
	}
	tmp := make([]uint8, len(pix))
	copy(tmp, pix)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := y * stride
		for c := 0; c < channels; c++ {
			for x := 0; x < w; x++ {
				prefix[x+1] = prefix[x] + int(pix[row+x*channels+c])
			}
			for x := 0; x < w; x++ {
				x0 := max(x-radius, 0)
				x1 := min(x+radius, w-1)
				tmp[row+x*channels+c] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
			}
		}
	}

	for x := 0; x < w; x++ {
		for c := 0; c < channels; c++ {
			off := x*channels + c
			for y := 0; y < h; y++ {
				prefix[y+1] = prefix[y] + int(tmp[y*stride+off])
			}
			for y := 0; y < h; y++ {
				y0 := max(y-radius, 0)
				y1 := min(y+radius, h-1)
				pix[y*stride+off] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
			}
		}
	}
}
