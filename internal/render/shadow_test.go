package render

import (
	"image"
	"image/color"
	"testing"
)

func solidMask(r image.Rectangle) *image.Alpha {
	m := image.NewAlpha(r)
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}

func TestDropShadowOffset(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 30, 30))
	opts := ShadowOptions{Radius: 0, Offset: image.Pt(5, 5), Opacity: 0.3}
	DropShadow(dst, solidMask(image.Rect(0, 0, 10, 10)), opts)

	if a := dst.RGBAAt(2, 2).A; a != 0 {
		t.Fatalf("shadow should not cover unshifted area, alpha=%d", a)
	}
	got := dst.RGBAAt(10, 10)
	if got.A != 77 || got.R != 0 {
		t.Fatalf("unexpected shadow pixel %+v", got)
	}
	if a := dst.RGBAAt(16, 16).A; a != 0 {
		t.Fatalf("shadow leaked beyond mask, alpha=%d", a)
	}
}

func TestDropShadowNoOpacity(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			dst.SetRGBA(x, y, fill)
		}
	}
	DropShadow(dst, solidMask(dst.Bounds()), ShadowOptions{Radius: 3, Offset: image.Pt(1, 1)})
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := dst.RGBAAt(x, y); got != fill {
				t.Fatalf("pixel mismatch at (%d,%d): got %+v want %+v", x, y, got, fill)
			}
		}
	}
}

func TestDropShadowBlurSpreads(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	DropShadow(dst, solidMask(image.Rect(5, 5, 6, 6)), ShadowOptions{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1})
	if dst.RGBAAt(8, 5).A == 0 {
		t.Fatal("expected alpha at shadow centre")
	}
	if dst.RGBAAt(9, 5).A == 0 {
		t.Fatal("expected blurred alpha to reach neighbour")
	}
}

func TestBoxBlurPreservesFlatImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for i := range img.Pix {
		img.Pix[i] = 90
	}
	boxBlur(img.Pix, img.Stride, 6, 4, 4, 3)
	for i, v := range img.Pix {
		if v != 90 {
			t.Fatalf("byte %d changed to %d", i, v)
		}
	}
}
