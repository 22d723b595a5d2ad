// Package export writes composed canvases to PNG and PDF files.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// Format is an output file type.
type Format string

const (
	PNGFormat Format = "png"
	PDFFormat Format = "pdf"
)

// FormatFor picks the format from the file extension, defaulting to PNG.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return PDFFormat
	}
	return PNGFormat
}

// DefaultName returns a unique file name such as
// "annotateshot-20250102-150405-1a2b3c4d.png".
func DefaultName(now time.Time, f Format) string {
	id := uuid.New().String()[:8]
	return fmt.Sprintf("annotateshot-%s-%s.%s", now.Format("20060102-150405"), id, f)
}

// PNG encodes img to w.
func PNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PDF writes img to w as a single page sized to the image at 72 dpi.
func PDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("export pdf: empty image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	wd, ht := float64(b.Dx()), float64(b.Dy())
	orientation := "P"
	if wd > ht {
		orientation = "L"
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("annotateshot", true)
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("canvas", opts, &buf)
	pdf.ImageOptions("canvas", 0, 0, wd, ht, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return pdf.Output(w)
}

// WriteFile saves img to path in the format implied by its extension.
func WriteFile(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch FormatFor(path) {
	case PDFFormat:
		err = PDF(f, img)
	default:
		err = PNG(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
