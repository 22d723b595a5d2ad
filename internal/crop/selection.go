// Package crop implements the crop selection state machine and the basic and
// torn-paper crop styles.
package crop

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
)

// MinSize is the smallest accepted selection edge in canvas pixels.
const MinSize = 10

// ErrTooSmall is returned by End when the selection is below MinSize.
var ErrTooSmall = errors.New("crop selection too small")

// Style selects how the cropped image edges are finished.
type Style int

const (
	Basic Style = iota
	Torn
)

func (s Style) String() string {
	switch s {
	case Basic:
		return "basic"
	case Torn:
		return "torn"
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// ParseStyle accepts "basic" and "torn".
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "basic":
		return Basic, nil
	case "torn":
		return Torn, nil
	}
	return Basic, fmt.Errorf("unknown crop style %q", s)
}

// State is the phase of the selection.
type State int

const (
	Idle State = iota
	Selecting
	PreviewReady
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case PreviewReady:
		return "preview"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Selection tracks the rectangle dragged out in crop mode. It only exists in
// memory and is never persisted.
type Selection struct {
	state          State
	x0, y0, x1, y1 float64
}

// State returns the current phase.
func (s *Selection) State() State { return s.state }

// Begin starts a new selection at (x, y), discarding any previous one.
func (s *Selection) Begin(x, y float64) {
	s.state = Selecting
	s.x0, s.y0, s.x1, s.y1 = x, y, x, y
}

// Update moves the free corner while selecting.
func (s *Selection) Update(x, y float64) {
	if s.state != Selecting {
		return
	}
	s.x1, s.y1 = x, y
}

// End finishes the drag. Selections smaller than MinSize in either direction
// return ErrTooSmall and reset to Idle.
func (s *Selection) End(x, y float64) error {
	if s.state != Selecting {
		return nil
	}
	s.x1, s.y1 = x, y
	r := s.Rect()
	if r.Dx() < MinSize || r.Dy() < MinSize {
		s.Cancel()
		return ErrTooSmall
	}
	s.state = PreviewReady
	return nil
}

// Cancel drops the selection.
func (s *Selection) Cancel() {
	*s = Selection{}
}

// Rect returns the normalised selection in canvas pixels.
func (s *Selection) Rect() image.Rectangle {
	minX, maxX := math.Min(s.x0, s.x1), math.Max(s.x0, s.x1)
	minY, maxY := math.Min(s.y0, s.y1), math.Max(s.y0, s.y1)
	return image.Rect(int(math.Round(minX)), int(math.Round(minY)), int(math.Round(maxX)), int(math.Round(maxY)))
}
