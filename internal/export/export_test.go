package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func canvas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img.SetRGBA(3, 3, color.RGBA{255, 0, 0, 255})
	return img
}

func TestDefaultNameUnique(t *testing.T) {
	now := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	a := DefaultName(now, PNGFormat)
	b := DefaultName(now, PNGFormat)
	if a == b {
		t.Fatalf("names collide: %s", a)
	}
	if !regexp.MustCompile(`^annotateshot-20250102-150405-[0-9a-f]{8}\.png$`).MatchString(a) {
		t.Fatalf("unexpected name %q", a)
	}
}

func TestFormatFor(t *testing.T) {
	if FormatFor("out.PDF") != PDFFormat || FormatFor("out.png") != PNGFormat || FormatFor("out") != PNGFormat {
		t.Fatal("format detection wrong")
	}
}

func TestWriteFilePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.png")
	if err := WriteFile(path, canvas()); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 40, 20) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestPDFHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, canvas()); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("missing pdf header")
	}
	if err := PDF(&buf, image.NewRGBA(image.Rectangle{})); err == nil {
		t.Fatal("expected error for empty image")
	}
}
