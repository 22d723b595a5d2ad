package editor

import (
	"image/color"

	"github.com/example/annotateshot/internal/annotation"
	"github.com/example/annotateshot/internal/crop"
)

// Mode returns the active tool.
func (e *Editor) Mode() Mode { return e.mode }

// SetMode switches tools. Leaving crop mode abandons any pending selection.
func (e *Editor) SetMode(m Mode) {
	if m == e.mode {
		return
	}
	if e.mode == ModeCrop {
		e.sel.Cancel()
	}
	e.ptr = pointer{}
	e.mode = m
	e.persist()
	e.say("status.mode", "Mode", e.tr.T("mode."+m.String(), nil))
}

// Color is the colour used for new annotations.
func (e *Editor) Color() color.RGBA { return e.color }

// SetColor sets the colour of new annotations.
func (e *Editor) SetColor(c color.RGBA) {
	e.color = c
	e.persist()
}

// Size is the size used for new annotations.
func (e *Editor) Size() int { return e.size }

// SetSize sets the size of new annotations. Non-positive sizes are ignored.
func (e *Editor) SetSize(n int) {
	if n <= 0 {
		return
	}
	e.size = n
	e.persist()
}

// SetShape selects the geometry drawn in shape mode.
func (e *Editor) SetShape(s annotation.ShapeKind) {
	e.shape = s
	e.persist()
}

// Shape is the geometry drawn in shape mode.
func (e *Editor) Shape() annotation.ShapeKind { return e.shape }

// SetFill selects the fill used by new rectangles and circles.
func (e *Editor) SetFill(f annotation.FillMode) {
	e.fill = f
	e.persist()
}

// Fill is the fill used by new rectangles and circles.
func (e *Editor) Fill() annotation.FillMode { return e.fill }

// SetLineWidth sets the stroke width of new shapes.
func (e *Editor) SetLineWidth(w int) {
	if w <= 0 {
		return
	}
	e.lineWidth = w
	e.persist()
}

// SetCropStyle selects the crop finish.
func (e *Editor) SetCropStyle(s crop.Style) {
	e.cropStyle = s
	e.persist()
}

// CropStyle is the selected crop finish.
func (e *Editor) CropStyle() crop.Style { return e.cropStyle }

// SetPendingText sets the text placed by the next click in text mode.
func (e *Editor) SetPendingText(s string) { e.text = s }

// PendingText is the text placed by the next click in text mode.
func (e *Editor) PendingText() string { return e.text }

// SetEmoji sets the glyph placed in emoji mode.
func (e *Editor) SetEmoji(g string) {
	if g != "" {
		e.emoji = g
	}
}
