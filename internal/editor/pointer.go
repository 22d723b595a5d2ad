package editor

import (
	"errors"
	"log"
	"math"

	"github.com/example/annotateshot/internal/annotation"
	"github.com/example/annotateshot/internal/crop"
)

type pointerState int

const (
	pointerIdle pointerState = iota
	pointerDragging
	pointerDrawing
)

// minShapeSize is the smallest drag that produces a shape.
const minShapeSize = 2

// pointer tracks a press in progress.
type pointer struct {
	state  pointerState
	target *annotation.Annotation
	dx, dy float64
	lastX  float64
	lastY  float64
	moved  bool
}

// Dragging reports whether an annotation is being moved.
func (e *Editor) Dragging() bool { return e.ptr.state == pointerDragging }

// PointerDown starts a drag when (x, y) hits an annotation, otherwise it
// creates an annotation for the current tool. In crop mode it starts a
// selection.
func (e *Editor) PointerDown(x, y float64) {
	e.ptr.lastX, e.ptr.lastY = x, y
	if e.mode == ModeCrop {
		if !e.Loaded() {
			e.say("status.noImage")
			return
		}
		e.sel.Begin(x, y)
		return
	}
	if hit := e.store.HitTest(x, y); hit != nil {
		ax, ay := hit.Anchor()
		e.ptr = pointer{state: pointerDragging, target: hit, dx: x - ax, dy: y - ay, lastX: x, lastY: y}
		return
	}

	var p annotation.Payload
	switch e.mode {
	case ModeNumber:
		p = &annotation.Number{X: x, Y: y, Display: e.store.MaxNumber() + 1}
	case ModeText:
		if e.text == "" {
			e.say("status.enterText")
			return
		}
		p = &annotation.Text{X: x, Y: y, Text: e.text}
	case ModeEmoji:
		p = &annotation.Emoji{X: x, Y: y, Glyph: e.emoji}
	case ModeShape:
		p = &annotation.Shape{Shape: e.shape, Fill: e.fill, LineWidth: e.lineWidth, StartX: x, StartY: y, EndX: x, EndY: y}
	}
	a, err := e.Add(p)
	if err != nil {
		if !errors.Is(err, annotation.ErrNoImage) {
			log.Printf("add annotation: %v", err)
		}
		return
	}
	if e.mode == ModeShape {
		e.ptr = pointer{state: pointerDrawing, target: a, lastX: x, lastY: y}
	}
}

// PointerMove updates a drag, a shape being drawn or the crop selection.
func (e *Editor) PointerMove(x, y float64) {
	e.ptr.lastX, e.ptr.lastY = x, y
	switch {
	case e.mode == ModeCrop:
		e.sel.Update(x, y)
	case e.ptr.state == pointerDragging:
		e.ptr.target.MoveTo(x-e.ptr.dx, y-e.ptr.dy)
		e.ptr.moved = true
	case e.ptr.state == pointerDrawing:
		s := e.ptr.target.Payload.(*annotation.Shape)
		s.EndX, s.EndY = x, y
		e.ptr.moved = true
	}
}

// PointerUp finishes the current press.
func (e *Editor) PointerUp(x, y float64) {
	e.PointerMove(x, y)
	e.finish()
}

// PointerLeave ends the current press at the last known position, as if the
// button was released there.
func (e *Editor) PointerLeave() {
	e.finish()
}

func (e *Editor) finish() {
	if e.mode == ModeCrop {
		if e.sel.State() != crop.Selecting {
			return
		}
		err := e.sel.End(e.ptr.lastX, e.ptr.lastY)
		switch {
		case errors.Is(err, crop.ErrTooSmall):
			e.say("status.cropTooSmall", "Min", crop.MinSize)
		case err == nil:
			e.say("status.cropReady")
		}
		return
	}
	p := e.ptr
	e.ptr = pointer{}
	switch p.state {
	case pointerDragging:
		if p.moved {
			e.persist()
		}
	case pointerDrawing:
		s := p.target.Payload.(*annotation.Shape)
		if math.Abs(s.EndX-s.StartX) < minShapeSize && math.Abs(s.EndY-s.StartY) < minShapeSize {
			e.store.Remove(p.target.ID)
			e.changed()
			return
		}
		e.persist()
	}
}
