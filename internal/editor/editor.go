// Package editor is the annotation session for one working image: tool
// selection, pointer handling, undo, crop and persistence.
package editor

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"log"
	"math"

	"github.com/example/annotateshot/internal/annotation"
	"github.com/example/annotateshot/internal/crop"
	"github.com/example/annotateshot/internal/export"
	"github.com/example/annotateshot/internal/history"
	"github.com/example/annotateshot/internal/i18n"
	"github.com/example/annotateshot/internal/render"
	"github.com/example/annotateshot/internal/settings"
)

// Resize options for loaded images.
const (
	ResizeFit      = "fit"
	ResizeOriginal = "original"
)

// historyLimit caps the crop snapshots kept in memory.
const historyLimit = 20

// ErrNothingToUndo is returned by Undo when every undo tier is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// Editor owns the working image and everything drawn on it.
type Editor struct {
	store   *annotation.Store
	history *history.Stack
	sel     crop.Selection

	background image.Image
	canvas     *render.Canvas
	viewport   image.Point
	dpr        float64
	resize     string

	mode      Mode
	color     color.RGBA
	size      int
	shape     annotation.ShapeKind
	fill      annotation.FillMode
	lineWidth int
	cropStyle crop.Style
	text      string
	emoji     string

	ptr pointer

	prefs    settings.UserSettings
	kv       settings.KV
	tr       *i18n.Translator
	notice   func(string)
	onLayers func([]annotation.Layer)
}

// New creates an editor with no image loaded.
func New(opts ...Option) *Editor {
	e := &Editor{
		history:  history.NewStack(historyLimit),
		viewport: image.Pt(1280, 800),
		dpr:      1,
		resize:   ResizeFit,
		emoji:    "⭐",
		prefs:    settings.Defaults(),
	}
	for _, o := range opts {
		o(e)
	}
	if e.dpr <= 0 {
		e.dpr = 1
	}
	if e.tr == nil {
		e.tr = i18n.New("en")
	}
	e.store = annotation.NewStore(func(k annotation.Kind, n int) string {
		return e.tr.Tf("layer."+k.String(), "N", n)
	})
	e.store.SetBackgroundName(e.tr.T("layer.background", nil))
	e.ApplySettings(e.prefs)
	return e
}

// ApplySettings loads tool preferences from u. Invalid values keep the
// current setting and are logged.
func (e *Editor) ApplySettings(u settings.UserSettings) {
	d := settings.Defaults()
	u = settings.Overlay(d, u)
	if m, err := ParseMode(u.Mode); err == nil {
		e.mode = m
	} else {
		log.Printf("settings: %v", err)
	}
	if c, err := annotation.ParseHexColor(u.Color); err == nil {
		e.color = c
	} else {
		log.Printf("settings: %v", err)
		e.color = color.RGBA{255, 0, 0, 255}
	}
	e.size = u.Size
	if s, err := annotation.ParseShape(u.Shape); err == nil {
		e.shape = s
	} else {
		log.Printf("settings: %v", err)
	}
	if f, err := annotation.ParseFill(u.FillType); err == nil {
		e.fill = f
	} else {
		log.Printf("settings: %v", err)
	}
	e.lineWidth = u.LineWidth
	if s, err := crop.ParseStyle(u.CropStyle); err == nil {
		e.cropStyle = s
	} else {
		log.Printf("settings: %v", err)
	}
}

// Settings returns the document persisted under userSettings.
func (e *Editor) Settings() settings.UserSettings {
	return settings.UserSettings{
		Mode:       e.mode.String(),
		Color:      annotation.HexColor(e.color),
		Size:       e.size,
		Shape:      e.shape.String(),
		FillType:   e.fill.String(),
		LineWidth:  e.lineWidth,
		CropStyle:  e.cropStyle.String(),
		Clicks:     e.store.Snapshot(),
		ClickCount: e.store.MaxNumber(),
		ShapeCount: e.store.ShapeCount(),
	}
}

// persist writes userSettings. Failures are logged and otherwise ignored.
func (e *Editor) persist() {
	if e.kv == nil {
		return
	}
	if err := settings.Save(context.Background(), e.kv, e.Settings()); err != nil {
		log.Printf("save settings: %v", err)
	}
}

func (e *Editor) say(id string, kv ...any) {
	if e.notice != nil {
		e.notice(e.tr.Tf(id, kv...))
	}
}

// changed runs after every structural mutation.
func (e *Editor) changed() {
	e.persist()
	if e.onLayers != nil {
		e.onLayers(e.store.Layers())
	}
}

// Store exposes the annotation store for read access.
func (e *Editor) Store() *annotation.Store { return e.store }

// Layers returns the current layer list.
func (e *Editor) Layers() []annotation.Layer { return e.store.Layers() }

// Loaded reports whether an image is present.
func (e *Editor) Loaded() bool { return e.background != nil }

// Background is the working image.
func (e *Editor) Background() image.Image { return e.background }

// CanvasSize is the logical canvas size, zero before an image is loaded.
func (e *Editor) CanvasSize() image.Point {
	if e.canvas == nil {
		return image.Point{}
	}
	return image.Pt(e.canvas.Width, e.canvas.Height)
}

// DPR is the device pixel ratio of the canvas.
func (e *Editor) DPR() float64 { return e.dpr }

// SetViewport changes the fit area used by the next load or crop.
func (e *Editor) SetViewport(w, h int) { e.viewport = image.Pt(w, h) }

// LoadImage replaces the working image, discarding annotations and undo
// history, and fits the canvas to the viewport.
func (e *Editor) LoadImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return errors.New("empty image")
	}
	e.background = img
	e.store.Reset(true)
	e.history.Reset()
	e.sel.Cancel()
	e.ptr = pointer{}
	e.fitCanvas()
	e.changed()
	b := img.Bounds()
	e.say("status.imageLoaded", "Width", b.Dx(), "Height", b.Dy())
	return nil
}

// fitCanvas sizes the canvas for the working image. With ResizeFit images
// larger than the viewport are scaled down keeping their aspect ratio.
func (e *Editor) fitCanvas() {
	b := e.background.Bounds()
	w, h := b.Dx(), b.Dy()
	if e.resize == ResizeFit && e.viewport.X > 0 && e.viewport.Y > 0 {
		scale := math.Min(float64(e.viewport.X)/float64(w), float64(e.viewport.Y)/float64(h))
		if scale < 1 {
			w = max(1, int(math.Round(float64(w)*scale)))
			h = max(1, int(math.Round(float64(h)*scale)))
		}
	}
	e.canvas = render.NewCanvas(w, h, e.dpr)
}

// Clear removes every annotation and keeps the image.
func (e *Editor) Clear() {
	if e.store.Len() == 0 {
		return
	}
	e.store.Clear()
	e.changed()
	e.say("status.cleared")
}

// Add places an annotation with the current colour and size.
func (e *Editor) Add(p annotation.Payload) (*annotation.Annotation, error) {
	size := e.size
	if s, ok := p.(*annotation.Shape); ok && s.LineWidth == 0 {
		s.LineWidth = e.lineWidth
	}
	a, err := e.store.Add(p, e.color, size)
	if errors.Is(err, annotation.ErrNoImage) {
		e.say("status.noImage")
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	e.changed()
	return a, nil
}

// Import appends previously saved annotations to the current image. Records
// saved without layer fields are drawn but not listed as layers.
func (e *Editor) Import(list []*annotation.Annotation) error {
	if !e.Loaded() {
		e.say("status.noImage")
		return annotation.ErrNoImage
	}
	e.store.Import(list)
	e.changed()
	return nil
}

// Remove deletes one annotation, as from the layer list.
func (e *Editor) Remove(id int64) bool {
	if !e.store.Remove(id) {
		return false
	}
	e.changed()
	return true
}

// SetVisible toggles a layer. The background layer uses id 0.
func (e *Editor) SetVisible(id int64, visible bool) bool {
	if !e.store.SetVisible(id, visible) {
		return false
	}
	e.changed()
	return true
}

// SetText replaces the text of an existing text annotation.
func (e *Editor) SetText(id int64, text string) bool {
	a := e.store.Find(id)
	if a == nil {
		return false
	}
	t, ok := a.Payload.(*annotation.Text)
	if !ok {
		return false
	}
	t.Text = text
	e.changed()
	return true
}

// Render composes the canvas for display, including the crop selection.
func (e *Editor) Render() *image.RGBA {
	if e.canvas == nil {
		return nil
	}
	render.Render(e.canvas, e.background, e.store)
	if st := e.sel.State(); st == crop.Selecting || st == crop.PreviewReady {
		r := e.canvas.DeviceRect(e.sel.Rect())
		render.DrawDashedRect(e.canvas.Image, r, max(4, int(4*e.dpr)), max(1, int(e.dpr)), color.White, color.Black)
	}
	return e.canvas.Image
}

// Compose renders the annotated image without any editing overlay.
func (e *Editor) Compose() *image.RGBA {
	if e.canvas == nil {
		return nil
	}
	c := render.NewCanvas(e.canvas.Width, e.canvas.Height, e.dpr)
	render.Render(c, e.background, e.store)
	return c.Image
}

// ExportPNG writes the composed image to w.
func (e *Editor) ExportPNG(w io.Writer) error {
	img := e.Compose()
	if img == nil {
		e.say("status.noImage")
		return annotation.ErrNoImage
	}
	return export.PNG(w, img)
}
