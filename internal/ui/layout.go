package ui

import (
	"image"
	"math"
)

const (
	sidebarWidth = 200
	statusHeight = 28
	layerRow     = 22
	layerPad     = 8
)

// Layout places the canvas, the layer sidebar and the status bar inside the
// window. Coordinates are window pixels.
type Layout struct {
	Window  image.Point
	Canvas  image.Rectangle
	Zoom    float64
	DPR     float64
	Sidebar image.Rectangle
	Status  image.Rectangle
}

// NewLayout fits a canvas of device size dev into a window of size win. The
// canvas is only ever scaled down.
func NewLayout(win, dev image.Point, dpr float64) Layout {
	if dpr <= 0 {
		dpr = 1
	}
	l := Layout{Window: win, Zoom: 1, DPR: dpr}
	availW := max(0, win.X-sidebarWidth)
	availH := max(0, win.Y-statusHeight)
	l.Sidebar = image.Rect(availW, 0, win.X, availH)
	l.Status = image.Rect(0, availH, win.X, win.Y)
	if dev.X <= 0 || dev.Y <= 0 || availW == 0 || availH == 0 {
		return l
	}
	l.Zoom = math.Min(1, math.Min(float64(availW)/float64(dev.X), float64(availH)/float64(dev.Y)))
	w := int(float64(dev.X) * l.Zoom)
	h := int(float64(dev.Y) * l.Zoom)
	x0 := (availW - w) / 2
	y0 := (availH - h) / 2
	l.Canvas = image.Rect(x0, y0, x0+w, y0+h)
	return l
}

// Viewport is the logical area available to a fitted canvas.
func (l Layout) Viewport() image.Point {
	return image.Pt(int(float64(l.Sidebar.Min.X)/l.DPR), int(float64(l.Status.Min.Y)/l.DPR))
}

// ToCanvas converts a window position to logical canvas coordinates. ok is
// false outside the canvas.
func (l Layout) ToCanvas(x, y float32) (cx, cy float64, ok bool) {
	p := image.Pt(int(x), int(y))
	cx = (float64(x) - float64(l.Canvas.Min.X)) / l.Zoom / l.DPR
	cy = (float64(y) - float64(l.Canvas.Min.Y)) / l.Zoom / l.DPR
	return cx, cy, p.In(l.Canvas)
}

// LayerRect is the sidebar row of layer i.
func (l Layout) LayerRect(i int) image.Rectangle {
	y := l.Sidebar.Min.Y + layerPad + i*layerRow
	return image.Rect(l.Sidebar.Min.X+layerPad, y, l.Sidebar.Max.X-layerPad, y+layerRow)
}

// LayerAt returns the sidebar row under p, or -1.
func (l Layout) LayerAt(p image.Point, n int) int {
	if !p.In(l.Sidebar) {
		return -1
	}
	for i := 0; i < n; i++ {
		if p.In(l.LayerRect(i)) {
			return i
		}
	}
	return -1
}
