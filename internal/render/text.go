package render

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"sync"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Weight picks the typeface used for a run of text.
type Weight int

const (
	Regular Weight = iota
	Bold
)

var (
	regularFont *opentype.Font
	boldFont    *opentype.Font
	faces       sync.Map // map[faceKey]*lockedFace
)

type faceKey struct {
	weight Weight
	size   float64
}

// lockedFace serialises use of a face. An opentype face reuses one glyph
// buffer, so the lock is held for a whole draw or measure, not per glyph.
type lockedFace struct {
	mu   sync.Mutex
	face font.Face
}

func init() {
	var err error
	if regularFont, err = opentype.Parse(goregular.TTF); err != nil {
		log.Fatalf("parse font: %v", err)
	}
	if boldFont, err = opentype.Parse(gobold.TTF); err != nil {
		log.Fatalf("parse bold font: %v", err)
	}
}

func fontFor(w Weight) *opentype.Font {
	if w == Bold {
		return boldFont
	}
	return regularFont
}

func face(w Weight, size float64) (*lockedFace, error) {
	if size <= 0 {
		size = 12
	}
	size = math.Round(size*4) / 4
	key := faceKey{w, size}
	if f, ok := faces.Load(key); ok {
		return f.(*lockedFace), nil
	}
	src := fontFor(w)
	if src == nil {
		return nil, fmt.Errorf("font not initialised")
	}
	ff, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	actual, _ := faces.LoadOrStore(key, &lockedFace{face: ff})
	return actual.(*lockedFace), nil
}

// HasGlyphs reports whether the typeface can draw every visible rune of text.
// Joiners and variation selectors are ignored.
func HasGlyphs(w Weight, text string) bool {
	src := fontFor(w)
	if src == nil {
		return false
	}
	var buf sfnt.Buffer
	for _, r := range text {
		if unicode.IsSpace(r) || r == 0x200d || unicode.Is(unicode.Variation_Selector, r) {
			continue
		}
		if idx, err := src.GlyphIndex(&buf, r); err != nil || idx == 0 {
			return false
		}
	}
	return true
}

// MeasureText returns the advance width and line height of text.
func MeasureText(text string, w Weight, size float64) (width, height int, err error) {
	lf, err := face(w, size)
	if err != nil {
		return 0, 0, err
	}
	lf.mu.Lock()
	defer lf.mu.Unlock()
	d := &font.Drawer{Face: lf.face}
	m := lf.face.Metrics()
	return d.MeasureString(text).Ceil(), m.Ascent.Ceil() + m.Descent.Ceil(), nil
}

// DrawText renders text with its top-left corner at (x, y).
func DrawText(img *image.RGBA, x, y int, text string, col color.Color, w Weight, size float64) error {
	lf, err := face(w, size)
	if err != nil {
		return err
	}
	lf.mu.Lock()
	defer lf.mu.Unlock()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: lf.face,
		Dot:  fixed.P(x, y+lf.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return nil
}

// DrawCentered renders text so its ink box is centred on (cx, cy).
func DrawCentered(img *image.RGBA, cx, cy int, text string, col color.Color, w Weight, size float64) error {
	lf, err := face(w, size)
	if err != nil {
		return err
	}
	lf.mu.Lock()
	defer lf.mu.Unlock()
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: lf.face}
	bounds, _ := d.BoundString(text)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()
	x := cx - width/2 - bounds.Min.X.Floor()
	y := cy + height/2 - bounds.Max.Y.Ceil()
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
	return nil
}
