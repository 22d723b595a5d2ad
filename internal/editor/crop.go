package editor

import (
	"errors"
	"image"

	"github.com/example/annotateshot/internal/crop"
)

// ErrNoSelection is returned by ApplyCrop without a finished selection.
var ErrNoSelection = errors.New("no crop selection")

// CropState is the phase of the crop selection.
func (e *Editor) CropState() crop.State { return e.sel.State() }

// CropRect is the current selection in canvas pixels.
func (e *Editor) CropRect() image.Rectangle { return e.sel.Rect() }

// CancelCrop drops a selection in progress or awaiting confirmation.
func (e *Editor) CancelCrop() {
	if e.sel.State() == crop.Idle {
		return
	}
	e.sel.Cancel()
	e.say("status.cropCancelled")
}

// ApplyCrop replaces the working image with the previewed selection. The
// previous state is pushed for undo and all annotations are discarded since
// their coordinates no longer match the new image.
func (e *Editor) ApplyCrop() error {
	if e.sel.State() != crop.PreviewReady {
		return ErrNoSelection
	}
	sz := e.CanvasSize()
	res, err := crop.Apply(e.background, sz.X, sz.Y, e.sel.Rect(), e.cropStyle)
	if err != nil {
		e.sel.Cancel()
		if errors.Is(err, crop.ErrTooSmall) {
			e.say("status.cropTooSmall", "Min", crop.MinSize)
		}
		return err
	}
	e.history.Push(e.snapshot())
	e.sel.Cancel()
	e.background = res.Image
	e.store.Reset(true)
	e.fitCanvas()
	e.changed()
	b := res.Image.Bounds()
	e.say("status.cropApplied", "Width", b.Dx(), "Height", b.Dy())
	return nil
}
