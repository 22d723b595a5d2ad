package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	b := img.Bounds()
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			p := image.Pt(x+dx, y+dy)
			if p.In(b) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// DrawLine draws a Bresenham line with square pixels of the given thickness.
func DrawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawCircleThin(img *image.RGBA, cx, cy, r int, col color.Color) {
	x := r
	y := 0
	err := 1 - r
	b := img.Bounds()
	for x >= y {
		pts := [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}}
		for _, p := range pts {
			pt := image.Pt(cx+p[0], cy+p[1])
			if pt.In(b) {
				img.Set(pt.X, pt.Y, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

// DrawCircle strokes a circle centred at (cx, cy) with radius r.
func DrawCircle(img *image.RGBA, cx, cy, r int, col color.Color, thick int) {
	if thick <= 1 {
		drawCircleThin(img, cx, cy, r, col)
		return
	}
	start := -thick / 2
	for i := 0; i < thick; i++ {
		rr := r + start + i
		if rr >= 0 {
			drawCircleThin(img, cx, cy, rr, col)
		}
	}
}

// DrawArrow draws a line from (x0, y0) with an open head at (x1, y1).
func DrawArrow(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	DrawLine(img, x0, y0, x1, y1, col, thick)
	angle := math.Atan2(float64(y1-y0), float64(x1-x0))
	size := float64(6 + thick*3)
	a1 := angle + math.Pi/6
	a2 := angle - math.Pi/6
	DrawLine(img, x1, y1, x1-int(math.Cos(a1)*size), y1-int(math.Sin(a1)*size), col, thick)
	DrawLine(img, x1, y1, x1-int(math.Cos(a2)*size), y1-int(math.Sin(a2)*size), col, thick)
}

// DrawRect strokes the inside edge of rect.
func DrawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	DrawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	DrawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	DrawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	DrawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

func drawDashedLine(img *image.RGBA, x0, y0, x1, y1, dash, thickness int, c1, c2 color.Color) {
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	dir := 1
	if length < 0 {
		length = -length
		dir = -1
	}
	b := img.Bounds()
	for i := 0; i <= length; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		for t := 0; t < thickness; t++ {
			var p image.Point
			if horiz {
				p = image.Pt(x0+dir*i, y0+t)
			} else {
				p = image.Pt(x0+t, y0+dir*i)
			}
			if p.In(b) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// DrawDashedRect outlines rect with alternating dashes of c1 and c2.
func DrawDashedRect(img *image.RGBA, rect image.Rectangle, dash, thickness int, c1, c2 color.Color) {
	if dash <= 0 {
		dash = 4
	}
	drawDashedLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, dash, thickness, c1, c2)
}

// DrawPolyline strokes the segments joining pts, closing the loop when closed
// is set.
func DrawPolyline(img *image.RGBA, pts []f32.Vec2, closed bool, col color.Color, thick int) {
	if len(pts) < 2 {
		return
	}
	pt := func(v f32.Vec2) (int, int) {
		return int(math.Round(float64(v[0]))), int(math.Round(float64(v[1])))
	}
	for i := 1; i < len(pts); i++ {
		x0, y0 := pt(pts[i-1])
		x1, y1 := pt(pts[i])
		DrawLine(img, x0, y0, x1, y1, col, thick)
	}
	if closed {
		x0, y0 := pt(pts[len(pts)-1])
		x1, y1 := pt(pts[0])
		DrawLine(img, x0, y0, x1, y1, col, thick)
	}
}

// PolygonMask rasterises the closed polygon pts into an anti-aliased alpha
// mask covering r. Points are in the same coordinate space as r.
func PolygonMask(r image.Rectangle, pts []f32.Vec2) *image.Alpha {
	mask := image.NewAlpha(r)
	if r.Empty() || len(pts) < 3 {
		return mask
	}
	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Src
	z.MoveTo(pts[0][0]-ox, pts[0][1]-oy)
	for _, p := range pts[1:] {
		z.LineTo(p[0]-ox, p[1]-oy)
	}
	z.ClosePath()
	z.Draw(mask, r, image.Opaque, image.Point{})
	return mask
}

// circleKappa places cubic control points so four curves approximate a circle.
const circleKappa = 0.5522847498

// DiscMask rasterises a filled disc into an alpha mask covering r.
func DiscMask(r image.Rectangle, cx, cy, radius float64) *image.Alpha {
	mask := image.NewAlpha(r)
	if r.Empty() || radius <= 0 {
		return mask
	}
	x := float32(cx - float64(r.Min.X))
	y := float32(cy - float64(r.Min.Y))
	rr := float32(radius)
	k := rr * circleKappa
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Src
	z.MoveTo(x+rr, y)
	z.CubeTo(x+rr, y+k, x+k, y+rr, x, y+rr)
	z.CubeTo(x-k, y+rr, x-rr, y+k, x-rr, y)
	z.CubeTo(x-rr, y-k, x-k, y-rr, x, y-rr)
	z.CubeTo(x+k, y-rr, x+rr, y-k, x+rr, y)
	z.ClosePath()
	z.Draw(mask, r, image.Opaque, image.Point{})
	return mask
}

// FillMask paints col over dst wherever mask is set.
func FillMask(dst *image.RGBA, mask *image.Alpha, col color.Color) {
	r := mask.Bounds().Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.DrawMask(dst, r, image.NewUniform(col), image.Point{}, mask, r.Min, draw.Over)
}

// FillDisc paints an anti-aliased filled circle.
func FillDisc(dst *image.RGBA, cx, cy, radius float64, col color.Color) {
	r := image.Rect(
		int(math.Floor(cx-radius))-1, int(math.Floor(cy-radius))-1,
		int(math.Ceil(cx+radius))+1, int(math.Ceil(cy+radius))+1,
	).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	FillMask(dst, DiscMask(r, cx, cy, radius), col)
}

// StarPoints returns the outline of a five-pointed star centred on (cx, cy)
// with outer radius r, first point up.
func StarPoints(cx, cy, r float64) []f32.Vec2 {
	const inner = 0.382
	pts := make([]f32.Vec2, 0, 10)
	for i := 0; i < 10; i++ {
		rr := r
		if i%2 == 1 {
			rr = r * inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts = append(pts, f32.Vec2{float32(cx + rr*math.Cos(a)), float32(cy + rr*math.Sin(a))})
	}
	return pts
}

// FillStar paints an anti-aliased five-pointed star.
func FillStar(dst *image.RGBA, cx, cy, r float64, col color.Color) {
	rect := image.Rect(
		int(math.Floor(cx-r))-1, int(math.Floor(cy-r))-1,
		int(math.Ceil(cx+r))+1, int(math.Ceil(cy+r))+1,
	).Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	FillMask(dst, PolygonMask(rect, StarPoints(cx, cy, r)), col)
}
