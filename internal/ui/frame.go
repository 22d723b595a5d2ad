package ui

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	xdraw "golang.org/x/image/draw"

	"github.com/example/annotateshot/internal/annotation"
	"github.com/example/annotateshot/internal/render"
	"github.com/example/annotateshot/internal/theme"
)

const uiTextSize = 13

// frame is everything one paint needs. It is built on the event goroutine and
// handed to the painter, so it shares no mutable state with the editor.
type frame struct {
	layout  Layout
	canvas  *image.RGBA
	layers  []annotation.Layer
	status  string
	mode    string
	typing  bool
	pending string
	theme   *theme.Theme
}

func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

func label(dst *image.RGBA, x, y int, s string, col color.Color) {
	if err := render.DrawText(dst, x, y, s, col, render.Regular, uiTextSize); err != nil {
		log.Printf("ui text: %v", err)
	}
}

// drawFrame paints f into dst, which must cover the whole window.
func drawFrame(dst *image.RGBA, f frame) {
	th := f.theme
	if th == nil {
		th = theme.Default()
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	if f.canvas != nil && !f.layout.Canvas.Empty() {
		drawCheckerboard(dst, f.layout.Canvas, 8, th.CheckerLight, th.CheckerDark)
		if f.layout.Zoom == 1 {
			draw.Draw(dst, f.layout.Canvas, f.canvas, f.canvas.Bounds().Min, draw.Over)
		} else {
			xdraw.ApproxBiLinear.Scale(dst, f.layout.Canvas, f.canvas, f.canvas.Bounds(), draw.Over, nil)
		}
	}

	draw.Draw(dst, f.layout.Sidebar, image.NewUniform(th.SidebarBackground), image.Point{}, draw.Src)
	for i, l := range f.layers {
		r := f.layout.LayerRect(i)
		if r.Max.Y > f.layout.Sidebar.Max.Y {
			break
		}
		col := th.LayerText
		mark := "●"
		if !l.Visible {
			col = th.LayerHidden
			mark = "○"
		}
		label(dst, r.Min.X, r.Min.Y+3, mark+" "+l.Name, col)
	}

	draw.Draw(dst, f.layout.Status, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	status := f.status
	if f.typing {
		status = f.pending + "|"
	}
	label(dst, f.layout.Status.Min.X+layerPad, f.layout.Status.Min.Y+7, status, th.StatusText)
	if f.mode != "" {
		w, _, err := render.MeasureText(f.mode, render.Regular, uiTextSize)
		if err == nil {
			label(dst, f.layout.Status.Max.X-w-layerPad, f.layout.Status.Min.Y+7, f.mode, th.StatusText)
		}
	}
}
