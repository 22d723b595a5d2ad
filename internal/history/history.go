// Package history keeps the snapshots taken before whole-image operations so
// they can be undone.
package history

import (
	"image"

	"github.com/example/annotateshot/internal/annotation"
)

// Snapshot is the editor state captured before a destructive operation such
// as applying a crop.
type Snapshot struct {
	Background   image.Image
	CanvasWidth  int
	CanvasHeight int
	// ResizeOption is the viewport fit that was active, e.g. "fit" or "original".
	ResizeOption string
	Annotations  []*annotation.Annotation
	ClickCount   int
	ShapeCount   int
}

// Stack is a LIFO of snapshots. The zero value is ready to use.
type Stack struct {
	items []Snapshot
	limit int
}

// NewStack returns a stack that keeps at most limit snapshots. A limit of
// zero keeps everything.
func NewStack(limit int) *Stack {
	return &Stack{limit: limit}
}

// Push records s. The annotations are deep copied so later edits to the live
// store do not leak into the snapshot.
func (st *Stack) Push(s Snapshot) {
	list := make([]*annotation.Annotation, len(s.Annotations))
	for i, a := range s.Annotations {
		list[i] = a.Clone()
	}
	s.Annotations = list
	st.items = append(st.items, s)
	if st.limit > 0 && len(st.items) > st.limit {
		st.items[0] = Snapshot{}
		st.items = st.items[1:]
	}
}

// Pop removes and returns the newest snapshot.
func (st *Stack) Pop() (Snapshot, bool) {
	if len(st.items) == 0 {
		return Snapshot{}, false
	}
	s := st.items[len(st.items)-1]
	st.items[len(st.items)-1] = Snapshot{}
	st.items = st.items[:len(st.items)-1]
	return s, true
}

// Len reports how many snapshots are held.
func (st *Stack) Len() int { return len(st.items) }

// Reset drops every snapshot.
func (st *Stack) Reset() { st.items = nil }
