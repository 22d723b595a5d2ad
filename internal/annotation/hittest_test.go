package annotation

import (
	"math"
	"testing"
)

func TestCircleRing(t *testing.T) {
	s := loadedStore()
	s.Add(&Shape{Shape: ShapeCircle, StartX: 100, StartY: 100, EndX: 150, EndY: 100}, red, 10)
	const r = 50.0
	at := func(d float64) (float64, float64) {
		angle := math.Pi / 4
		return 100 + d*math.Cos(angle), 100 + d*math.Sin(angle)
	}
	for _, d := range []float64{r - 1, r + 1, r} {
		if x, y := at(d); s.HitTest(x, y) == nil {
			t.Errorf("expected hit at distance %v", d)
		}
	}
	for _, d := range []float64{r - 10, r + 10, 0} {
		if x, y := at(d); s.HitTest(x, y) != nil {
			t.Errorf("unexpected hit at distance %v", d)
		}
	}
}

func TestRectangleBorderOnly(t *testing.T) {
	s := loadedStore()
	s.Add(&Shape{Shape: ShapeRectangle, StartX: 150, StartY: 150, EndX: 50, EndY: 50}, red, 10)
	cases := []struct {
		x, y float64
		hit  bool
	}{
		{50, 100, true},
		{47, 100, true},
		{153, 150, true},
		{100, 52, true},
		{100, 100, false},
		{40, 100, false},
		{100, 160, false},
	}
	for _, c := range cases {
		if got := s.HitTest(c.x, c.y) != nil; got != c.hit {
			t.Errorf("hit(%v,%v)=%v want %v", c.x, c.y, got, c.hit)
		}
	}
}

func TestNumberTextEmojiArrowBounds(t *testing.T) {
	s := loadedStore()
	num, _ := s.Add(&Number{X: 20, Y: 20, Display: 1}, red, 10)
	txt, _ := s.Add(&Text{X: 200, Y: 200, Text: "hello"}, red, 20)
	emo, _ := s.Add(&Emoji{X: 400, Y: 400, Glyph: ":)"}, red, 12)
	arr, _ := s.Add(&Shape{Shape: ShapeArrow, StartX: 500, StartY: 500, EndX: 600, EndY: 550}, red, 4)

	check := func(x, y float64, want *Annotation) {
		t.Helper()
		if got := s.HitTest(x, y); got != want {
			t.Errorf("hit(%v,%v) = %v, want %v", x, y, got, want)
		}
	}
	check(27, 27, num)
	check(29, 29, nil)
	check(255, 215, txt)
	check(265, 215, nil)
	check(200, 221, nil)
	check(411, 389, emo)
	check(413, 400, nil)
	check(550, 525, arr)
	check(603, 553, arr)
	check(610, 525, nil)
}

func TestHitPrefersNewest(t *testing.T) {
	s := loadedStore()
	s.Add(&Number{X: 10, Y: 10, Display: 1}, red, 10)
	top, _ := s.Add(&Number{X: 12, Y: 12, Display: 2}, red, 10)
	if got := s.HitTest(11, 11); got != top {
		t.Fatalf("expected newest annotation, got %v", got)
	}
	s.SetVisible(top.ID, false)
	if got := s.HitTest(11, 11); got == nil || got == top {
		t.Fatalf("hidden layer should not be hit, got %v", got)
	}
}
