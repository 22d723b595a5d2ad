package render

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/example/annotateshot/internal/annotation"
)

func TestDrawTextConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dst := image.NewRGBA(image.Rect(0, 0, 200, 30))
			for i := 0; i < 500; i++ {
				if err := DrawText(dst, 0, 0, "Number 12 Shape 3", color.Black, Regular, 13); err != nil {
					t.Errorf("draw: %v", err)
					return
				}
				if _, _, err := MeasureText("Number 12", Regular, 13); err != nil {
					t.Errorf("measure: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestHasGlyphs(t *testing.T) {
	if !HasGlyphs(Regular, "Hello, world") {
		t.Fatal("latin text should be drawable")
	}
	if HasGlyphs(Regular, "⭐") {
		t.Fatal("goregular has no emoji glyphs")
	}
	if !HasGlyphs(Regular, "*️") {
		t.Fatal("variation selector should be ignored")
	}
}

func TestEmojiFallsBackToStar(t *testing.T) {
	s := annotation.NewStore(nil)
	s.Reset(true)
	s.Add(&annotation.Emoji{X: 50, Y: 50, Glyph: "⭐"}, color.RGBA{255, 0, 0, 255}, 20)
	c := NewCanvas(100, 100, 1)
	Render(c, nil, s)
	if got := c.Image.RGBAAt(50, 50); got.R != 255 || got.A != 255 {
		t.Fatalf("star centre not filled: %v", got)
	}
	if got := c.Image.RGBAAt(50, 33); got.R != 255 {
		t.Fatalf("top point not filled: %v", got)
	}
	if got := c.Image.RGBAAt(33, 33); got.A != 0 {
		t.Fatalf("star corner gap painted: %v", got)
	}
}
