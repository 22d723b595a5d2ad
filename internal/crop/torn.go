package crop

import (
	"math"

	"golang.org/x/image/math/f32"
)

const (
	// ShadowMargin is added to the right and bottom of torn crops to make room
	// for the drop shadow.
	ShadowMargin = 12
	// tornStep is the spacing of path points along a torn edge.
	tornStep = 8
	// tornDepth is how far a torn edge may bite into the image.
	tornDepth = 6
	tornSeed  = 0x5eed_c0ffee
)

// wobble returns a value in [0, 1) determined only by (x, y). The same
// position always produces the same value, which keeps torn edges
// reproducible for equal crop sizes.
func wobble(x, y int) float64 {
	h := uint64(tornSeed)
	h ^= uint64(uint32(x)) * 0x9e3779b97f4a7c15
	h ^= uint64(uint32(y)) * 0xc2b2ae3d27d4eb4f
	// splitmix64 finaliser
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return float64(h>>11) / (1 << 53)
}

// TornEdgePath returns the clockwise outline of a w by h crop whose top and
// left edges are straight and whose right and bottom edges are torn. Equal
// sizes always give identical paths.
func TornEdgePath(w, h int) []f32.Vec2 {
	if w <= 0 || h <= 0 {
		return nil
	}
	fw, fh := float64(w), float64(h)
	bite := func(x, y int) float64 {
		return wobble(x, y) * tornDepth
	}
	pts := []f32.Vec2{{0, 0}, {float32(fw), 0}}
	for y := tornStep; y < h; y += tornStep {
		pts = append(pts, f32.Vec2{float32(fw - bite(w, y)), float32(y)})
	}
	corner := math.Min(bite(w, h), bite(w, h+1))
	pts = append(pts, f32.Vec2{float32(fw - corner), float32(fh - corner)})
	last := w - (w % tornStep)
	if last == w {
		last -= tornStep
	}
	for x := last; x > 0; x -= tornStep {
		pts = append(pts, f32.Vec2{float32(x), float32(fh - bite(x, h))})
	}
	pts = append(pts, f32.Vec2{0, float32(fh)})
	return pts
}
