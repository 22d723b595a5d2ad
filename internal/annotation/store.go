package annotation

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrNoImage is returned by Add when no background image is loaded.
var ErrNoImage = errors.New("no image loaded")

// Namer produces the display name of the n-th layer of a kind (n starts at 1).
type Namer func(k Kind, n int) string

// DefaultNamer names layers "Number 1", "Shape 2" and so on.
func DefaultNamer(k Kind, n int) string {
	switch k {
	case KindNumber:
		return fmt.Sprintf("Number %d", n)
	case KindShape:
		return fmt.Sprintf("Shape %d", n)
	case KindText:
		return fmt.Sprintf("Text %d", n)
	case KindEmoji:
		return fmt.Sprintf("Emoji %d", n)
	}
	return fmt.Sprintf("Layer %d", n)
}

// Layer is a read-only view of one renderable unit: the background at index
// zero, then one entry per annotation in creation order.
type Layer struct {
	Background bool
	Annotation *Annotation
	Visible    bool
	Name       string
}

// Store is the single ordered collection of annotations for one loaded image.
// Layer metadata lives on each annotation so the layer list can never drift
// from the annotation sequence.
type Store struct {
	items   []*Annotation
	nextID  int64
	loaded  bool
	bgShown bool
	bgName  string
	namer   Namer

	maxNumber  int
	shapeCount int
}

// NewStore returns an empty store. A nil namer selects DefaultNamer.
func NewStore(namer Namer) *Store {
	if namer == nil {
		namer = DefaultNamer
	}
	return &Store{nextID: 1, bgShown: true, bgName: "Background", namer: namer}
}

// SetBackgroundName changes the label of the background layer.
func (s *Store) SetBackgroundName(name string) { s.bgName = name }

// Reset discards every annotation and marks whether a background is loaded.
// It is called when a new image replaces the current one.
func (s *Store) Reset(loaded bool) {
	s.items = nil
	s.loaded = loaded
	s.bgShown = true
	s.maxNumber = 0
	s.shapeCount = 0
}

// Loaded reports whether a background image is present.
func (s *Store) Loaded() bool { return s.loaded }

// Len returns the number of annotations.
func (s *Store) Len() int { return len(s.items) }

// All returns the annotations in order. The slice must not be modified.
func (s *Store) All() []*Annotation { return s.items }

// MaxNumber is the largest number badge currently placed.
func (s *Store) MaxNumber() int { return s.maxNumber }

// ShapeCount is the number of shape annotations currently placed.
func (s *Store) ShapeCount() int { return s.shapeCount }

// Add appends a new annotation built from p and assigns it a fresh ID.
func (s *Store) Add(p Payload, col color.RGBA, size int) (*Annotation, error) {
	if !s.loaded {
		return nil, ErrNoImage
	}
	if p == nil {
		return nil, fmt.Errorf("annotation payload is nil")
	}
	a := &Annotation{
		ID:      s.nextID,
		Color:   col,
		Size:    size,
		Payload: p,
		Layer: LayerMeta{
			Visible: true,
			Tracked: true,
			Name:    s.namer(p.Kind(), s.countKind(p.Kind())+1),
		},
	}
	s.nextID++
	s.items = append(s.items, a)
	s.account(a)
	return a, nil
}

// RemoveLast pops the most recent annotation.
func (s *Store) RemoveLast() (*Annotation, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	last := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	s.Recount()
	return last, true
}

// Remove deletes the annotation with the given id.
func (s *Store) Remove(id int64) bool {
	for i, a := range s.items {
		if a.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.Recount()
			return true
		}
	}
	return false
}

// Clear empties the annotation sequence and keeps the background.
func (s *Store) Clear() {
	s.items = nil
	s.Recount()
}

// Find returns the annotation with the given id.
func (s *Store) Find(id int64) *Annotation {
	for _, a := range s.items {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// SetVisible toggles layer visibility. The background uses id 0.
func (s *Store) SetVisible(id int64, visible bool) bool {
	if id == 0 {
		s.bgShown = visible
		return true
	}
	a := s.Find(id)
	if a == nil {
		return false
	}
	a.Layer.Visible = visible
	return true
}

// BackgroundVisible reports whether the background layer is drawn.
func (s *Store) BackgroundVisible() bool { return s.bgShown }

// Snapshot returns a deep copy of the annotation sequence.
func (s *Store) Snapshot() []*Annotation {
	out := make([]*Annotation, len(s.items))
	for i, a := range s.items {
		out[i] = a.Clone()
	}
	return out
}

// Replace swaps in a previously captured sequence and rebuilds layer names.
func (s *Store) Replace(list []*Annotation) {
	s.items = make([]*Annotation, len(list))
	for i, a := range list {
		s.items[i] = a.Clone()
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
	}
	s.RebuildLayers()
	s.Recount()
}

// Import appends decoded annotations as they are. Records that carry no layer
// metadata stay untracked: they are drawn but never listed as layers.
// Annotations without an ID get a fresh one.
func (s *Store) Import(list []*Annotation) {
	for _, a := range list {
		c := a.Clone()
		if c.ID == 0 || c.ID < s.nextID && s.Find(c.ID) != nil {
			c.ID = s.nextID
		}
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
		s.items = append(s.items, c)
		s.account(c)
	}
}

// RebuildLayers regenerates layer metadata from the annotation sequence,
// naming each layer by its per-kind occurrence count. Visibility already set
// on tracked annotations is preserved.
func (s *Store) RebuildLayers() {
	counts := map[Kind]int{}
	for _, a := range s.items {
		k := a.Kind()
		counts[k]++
		if !a.Layer.Tracked {
			a.Layer.Visible = true
		}
		a.Layer.Tracked = true
		a.Layer.Name = s.namer(k, counts[k])
	}
}

// Layers returns the background layer followed by one layer per tracked
// annotation. Untracked legacy annotations are omitted.
func (s *Store) Layers() []Layer {
	out := make([]Layer, 0, len(s.items)+1)
	out = append(out, Layer{Background: true, Visible: s.bgShown, Name: s.bgName})
	for _, a := range s.items {
		if !a.Layer.Tracked {
			continue
		}
		out = append(out, Layer{Annotation: a, Visible: a.Layer.Visible, Name: a.Layer.Name})
	}
	return out
}

// Untracked returns annotations that have no layer entry.
func (s *Store) Untracked() []*Annotation {
	var out []*Annotation
	for _, a := range s.items {
		if !a.Layer.Tracked {
			out = append(out, a)
		}
	}
	return out
}

// Recount recomputes the derived counters from the sequence.
func (s *Store) Recount() {
	s.maxNumber = 0
	s.shapeCount = 0
	for _, a := range s.items {
		s.account(a)
	}
}

func (s *Store) account(a *Annotation) {
	switch p := a.Payload.(type) {
	case *Number:
		if p.Display > s.maxNumber {
			s.maxNumber = p.Display
		}
	case *Shape:
		s.shapeCount++
	}
}

func (s *Store) countKind(k Kind) int {
	n := 0
	for _, a := range s.items {
		if a.Kind() == k {
			n++
		}
	}
	return n
}
