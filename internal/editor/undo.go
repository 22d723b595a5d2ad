package editor

import (
	"github.com/example/annotateshot/internal/crop"
	"github.com/example/annotateshot/internal/history"
	"github.com/example/annotateshot/internal/render"
)

// Undo reverts the most recent change. A pending crop preview is cancelled
// first, then crop snapshots are restored, then single annotations are
// removed newest first. There is no redo.
func (e *Editor) Undo() error {
	if e.sel.State() == crop.PreviewReady {
		e.sel.Cancel()
		e.say("status.cropCancelled")
		return nil
	}
	if snap, ok := e.history.Pop(); ok {
		e.restore(snap)
		e.changed()
		e.say("status.undone")
		return nil
	}
	if _, ok := e.store.RemoveLast(); ok {
		e.changed()
		return nil
	}
	e.say("status.nothingToUndo")
	return ErrNothingToUndo
}

// CanUndo reports whether Undo would change anything.
func (e *Editor) CanUndo() bool {
	return e.sel.State() == crop.PreviewReady || e.history.Len() > 0 || e.store.Len() > 0
}

func (e *Editor) snapshot() history.Snapshot {
	s := history.Snapshot{
		Background:   e.background,
		ResizeOption: e.resize,
		Annotations:  e.store.Snapshot(),
		ClickCount:   e.store.MaxNumber(),
		ShapeCount:   e.store.ShapeCount(),
	}
	if e.canvas != nil {
		s.CanvasWidth, s.CanvasHeight = e.canvas.Width, e.canvas.Height
	}
	return s
}

func (e *Editor) restore(s history.Snapshot) {
	e.background = s.Background
	e.resize = s.ResizeOption
	if s.CanvasWidth > 0 && s.CanvasHeight > 0 {
		e.canvas = render.NewCanvas(s.CanvasWidth, s.CanvasHeight, e.dpr)
	}
	e.store.Reset(e.background != nil)
	e.store.Replace(s.Annotations)
	e.ptr = pointer{}
}
