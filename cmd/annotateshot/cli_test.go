package main

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/annotateshot/internal/clipboard"
	"github.com/example/annotateshot/internal/config"
	"github.com/example/annotateshot/internal/crop"
	"github.com/example/annotateshot/internal/i18n"
	"github.com/example/annotateshot/internal/source"
	"github.com/example/annotateshot/internal/theme"
	"github.com/example/annotateshot/internal/ui"
)

func testRoot(t *testing.T) *root {
	t.Helper()
	return &root{
		fs:          flag.NewFlagSet("annotateshot", flag.ContinueOnError),
		program:     "annotateshot",
		config:      config.New(),
		storePath:   filepath.Join(t.TempDir(), "store.db"),
		tr:          i18n.New("en"),
		activeTheme: theme.Default(),
	}
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	img, err := source.DecodeFile(path)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func TestParseDrawRequiresInput(t *testing.T) {
	_, err := parseDrawCmd([]string{"number", "1", "1"}, nil)
	if err == nil || !strings.Contains(err.Error(), "input file is required") {
		t.Fatalf("expected missing input error, got %v", err)
	}
}

func TestParseDrawClipboardRequiresOutput(t *testing.T) {
	_, err := parseDrawCmd([]string{"-from-clipboard", "arrow", "0", "0", "1", "1"}, nil)
	if err == nil || !strings.Contains(err.Error(), "output file is required") {
		t.Fatalf("expected missing output error, got %v", err)
	}
}

func TestParseDrawRejects(t *testing.T) {
	in := writePNG(t, 10, 10)
	cases := map[string][]string{
		"arrows cannot be filled": {"-file", in, "-fill", "solid", "arrow", "0", "0", "5", "5"},
		"unsupported operation":   {"-file", in, "star", "1", "2"},
		"requires 4 numeric":      {"-file", in, "rect", "1", "2", "3"},
		"invalid color":           {"-file", in, "-color", "nope", "number", "1", "2"},
		"content cannot be empty": {"-file", in, "text", "1", "2", " "},
		"only one of":             {"-file", in, "-from-clipboard", "number", "1", "2"},
	}
	for want, args := range cases {
		if _, err := parseDrawCmd(args, nil); err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("%v: expected error containing %q, got %v", args, want, err)
		}
	}
}

func TestDrawSolidRectangle(t *testing.T) {
	in := writePNG(t, 80, 60)
	out := filepath.Join(t.TempDir(), "out.png")
	d, err := parseDrawCmd([]string{"rect", "10", "10", "50", "40", "-file", in, "-output", out, "-fill", "solid", "-color", "blue"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := d.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img := readPNG(t, out)
	if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 60 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	r, g, b, _ := img.At(30, 25).RGBA()
	if r != 0 || g != 0 || b != 0xffff {
		t.Fatalf("fill not blue: %v %v %v", r, g, b)
	}
	if r, _, _, _ := img.At(70, 55).RGBA(); r != 0xffff {
		t.Fatalf("outside pixel changed")
	}
}

func TestDrawDefaultsToInputAndPDF(t *testing.T) {
	in := writePNG(t, 40, 30)
	d, err := parseDrawCmd([]string{"-file", in, "number", "20", "15"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.output != in {
		t.Fatalf("output defaulted to %q", d.output)
	}
	pdf := filepath.Join(t.TempDir(), "out.pdf")
	d, err = parseDrawCmd([]string{"-file", in, "-output", pdf, "emoji", "20", "15", "*"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := d.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(pdf)
	if err != nil || !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected a PDF, err=%v", err)
	}
}

func TestDrawImport(t *testing.T) {
	in := writePNG(t, 60, 60)
	list := filepath.Join(t.TempDir(), "notes.json")
	data := `[{"type":"shape","shape":"rectangle","startX":5,"startY":5,"endX":30,"endY":30,"fillType":"solid","color":"#00FF00","size":3}]`
	if err := os.WriteFile(list, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out.png")
	d, err := parseDrawCmd([]string{"-file", in, "-output", out, "import", list}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := d.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	r, g, b, _ := readPNG(t, out).At(15, 15).RGBA()
	if r != 0 || g != 0xffff || b != 0 {
		t.Fatalf("imported fill missing: %v %v %v", r, g, b)
	}
}

func TestDrawToClipboard(t *testing.T) {
	var copied image.Image
	orig := writeClipboardFn
	writeClipboardFn = func(img image.Image) error { copied = img; return nil }
	t.Cleanup(func() { writeClipboardFn = orig })

	in := writePNG(t, 20, 20)
	d, err := parseDrawCmd([]string{"-file", in, "-to-clipboard", "number", "10", "10", "4"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := d.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if copied == nil {
		t.Fatal("nothing copied")
	}
}

func TestDrawClipboardError(t *testing.T) {
	orig := readClipboardFn
	readClipboardFn = func() (image.Image, error) { return nil, clipboard.ErrEmpty }
	t.Cleanup(func() { readClipboardFn = orig })

	d, err := parseDrawCmd([]string{"-from-clipboard", "-output", filepath.Join(t.TempDir(), "o.png"), "number", "1", "1"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := d.Run(); !errors.Is(err, clipboard.ErrEmpty) {
		t.Fatalf("expected wrapped ErrEmpty, got %v", err)
	}
}

func TestCropBasicAndTorn(t *testing.T) {
	in := writePNG(t, 200, 150)
	dir := t.TempDir()
	basic := filepath.Join(dir, "basic.png")
	c, err := parseCropCmd([]string{"-file", in, "-output", basic, "110", "60", "10", "10"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := c.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if b := readPNG(t, basic).Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("unexpected basic crop %v", b)
	}

	torn := filepath.Join(dir, "torn.png")
	c, err = parseCropCmd([]string{"-file", in, "-output", torn, "-style", "torn", "10", "10", "110", "60"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := c.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if b := readPNG(t, torn).Bounds(); b.Dx() != 100+crop.ShadowMargin || b.Dy() != 50+crop.ShadowMargin {
		t.Fatalf("unexpected torn crop %v", b)
	}
}

func TestCropPastImageEdge(t *testing.T) {
	in := writePNG(t, 200, 100)
	out := filepath.Join(t.TempDir(), "edge.png")
	c, err := parseCropCmd([]string{"-file", in, "-output", out, "150", "50", "250", "90"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := c.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if b := readPNG(t, out).Bounds(); b.Dx() != 50 || b.Dy() != 40 {
		t.Fatalf("expected the overhang to be clipped, got %v", b)
	}
}

func TestCropTooSmall(t *testing.T) {
	in := writePNG(t, 50, 50)
	c, err := parseCropCmd([]string{"-file", in, "-output", filepath.Join(t.TempDir(), "o.png"), "0", "0", "5", "40"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := c.Run(); !errors.Is(err, crop.ErrTooSmall) {
		t.Fatalf("expected ErrTooSmall, got %v", err)
	}
	if _, err := parseCropCmd([]string{"-file", in, "-style", "zigzag", "0", "0", "20", "20"}, nil); err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestHandoffAndAnnotate(t *testing.T) {
	r := testRoot(t)
	in := writePNG(t, 64, 48)

	var msgs bytes.Buffer
	h, err := parseHandoffCmd([]string{"put", "-file", in, "-source", "https://example.com/page"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	h.out = &msgs
	if err := h.Run(); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !strings.Contains(msgs.String(), "64x48") {
		t.Fatalf("unexpected output %q", msgs.String())
	}

	var opened *ui.App
	orig := runWindowFn
	runWindowFn = func(a *ui.App) { opened = a }
	t.Cleanup(func() { runWindowFn = orig })

	a, err := parseAnnotateCmd(nil, r)
	if err != nil {
		t.Fatalf("parse annotate: %v", err)
	}
	if err := a.Run(); err != nil {
		t.Fatalf("annotate: %v", err)
	}
	if opened == nil || opened.Editor().CanvasSize() != image.Pt(64, 48) {
		t.Fatalf("handoff image not opened")
	}

	take, err := parseHandoffCmd([]string{"take", "-output", filepath.Join(t.TempDir(), "o.png")}, r)
	if err != nil {
		t.Fatalf("parse take: %v", err)
	}
	take.out = &msgs
	if err := take.Run(); !errors.Is(err, source.ErrNoHandoff) {
		t.Fatalf("handoff should be consumed, got %v", err)
	}
}

func TestAnnotateWithoutImage(t *testing.T) {
	r := testRoot(t)
	var opened *ui.App
	orig := runWindowFn
	runWindowFn = func(a *ui.App) { opened = a }
	t.Cleanup(func() { runWindowFn = orig })

	a, err := parseAnnotateCmd([]string{"-resize", "original"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := a.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if opened == nil || opened.Editor().Loaded() {
		t.Fatal("expected an empty editor window")
	}
	if _, err := parseAnnotateCmd([]string{"-resize", "stretch"}, r); err == nil {
		t.Fatal("expected error for unknown resize option")
	}
}

func TestSettingsCommands(t *testing.T) {
	r := testRoot(t)
	run := func(args ...string) string {
		t.Helper()
		s, err := parseSettingsCmd(args, r)
		if err != nil {
			t.Fatalf("parse %v: %v", args, err)
		}
		var out bytes.Buffer
		s.out = &out
		if err := s.Run(); err != nil {
			t.Fatalf("run %v: %v", args, err)
		}
		return out.String()
	}
	if got := run("show"); !strings.Contains(got, `"mode": "number"`) {
		t.Fatalf("unexpected settings %s", got)
	}
	if got := run("prune-cache", "-max-age", "1h"); got != "pruned 0 cached images\n" {
		t.Fatalf("unexpected prune output %q", got)
	}
	if got := run("reset"); got != "settings reset\n" {
		t.Fatalf("unexpected reset output %q", got)
	}
	if got := run("keys"); got != "" {
		t.Fatalf("expected empty store, got %q", got)
	}
	if _, err := parseSettingsCmd(nil, r); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestConfigPrintAndSave(t *testing.T) {
	r := testRoot(t)
	r.config.SaveDir = "/tmp/shots"
	c, err := parseConfigCmd([]string{"print"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	c.out = &out
	if err := c.Run(); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(out.String(), "save_dir = /tmp/shots") || !strings.Contains(out.String(), "[defaults]") {
		t.Fatalf("unexpected config output %q", out.String())
	}

	path := filepath.Join(t.TempDir(), "nested", "config.rc")
	c, err = parseConfigCmd([]string{"-output", path, "save"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := c.Run(); err != nil {
		t.Fatalf("save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open saved config: %v", err)
	}
	defer f.Close()
	cfg, err := config.Parse(f)
	if err != nil || cfg.SaveDir != "/tmp/shots" {
		t.Fatalf("saved config did not round trip: %v %+v", err, cfg)
	}
}

func TestUsageErrorRendersHelp(t *testing.T) {
	r := newRoot()
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	for _, want := range []string{"Usage: annotateshot", "annotate", "-notify-save", "-store"} {
		if !strings.Contains(uerr.Error(), want) {
			t.Errorf("help missing %q:\n%s", want, uerr.Error())
		}
	}
	_, err = parseDrawCmd(nil, r)
	if !errors.As(err, &uerr) || !strings.Contains(uerr.Error(), "import FILE.json") {
		t.Fatalf("draw help not rendered: %v", err)
	}
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	v := &versionCmd{r: &root{program: "annotateshot"}, out: &out}
	if err := v.Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "annotateshot version dev\n" {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestParseColor(t *testing.T) {
	if c, err := parseColor("Red"); err != nil || c != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("named colour: %v %v", c, err)
	}
	if c, err := parseColor("#00ff0080"); err != nil || c != (color.RGBA{0, 255, 0, 128}) {
		t.Fatalf("hex colour: %v %v", c, err)
	}
	if _, err := parseColor(""); err == nil {
		t.Fatal("expected error for empty colour")
	}
}

func TestSplitArgsKeepsNegativeNumbers(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	fs.String("file", "", "")
	fs.Bool("to-clipboard", false, "")
	flags, pos, err := splitArgs(fs, []string{"arrow", "-5", "10", "--file=a.png", "-to-clipboard", "-20", "3", "-unknown"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(flags, " ") != "-file=a.png -to-clipboard" {
		t.Fatalf("unexpected flags %v", flags)
	}
	if strings.Join(pos, " ") != "arrow -5 10 -20 3 -unknown" {
		t.Fatalf("unexpected positionals %v", pos)
	}
	if _, _, err := splitArgs(fs, []string{"-file"}); err == nil {
		t.Fatal("expected error for missing value")
	}
}

func TestEnvLocale(t *testing.T) {
	for in, want := range map[string]string{"zh_CN.UTF-8": "zh-CN", "C": "", "en_GB": "en-GB", "": ""} {
		if got := envLocale(in); got != want {
			t.Errorf("envLocale(%q) = %q, want %q", in, got, want)
		}
	}
}
