package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/annotateshot/internal/annotation"
	"github.com/example/annotateshot/internal/clipboard"
	"github.com/example/annotateshot/internal/export"
	"github.com/example/annotateshot/internal/source"
	"github.com/example/annotateshot/internal/storage"
)

// readClipboardFn and writeClipboardFn are replaced in tests.
var (
	readClipboardFn  = clipboard.ReadImage
	writeClipboardFn = clipboard.WriteImage
)

// parseColor accepts CSS colour names and #RGB, #RRGGBB or #RRGGBBAA.
func parseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	c, err := annotation.ParseHexColor(spec)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

// inputFlags selects where a command reads its image from.
type inputFlags struct {
	file      string
	url       string
	clipboard bool
	handoff   bool
}

func (in inputFlags) count() int {
	n := 0
	for _, set := range []bool{in.file != "", in.url != "", in.clipboard, in.handoff} {
		if set {
			n++
		}
	}
	return n
}

func (in inputFlags) validate() error {
	if in.count() > 1 {
		return fmt.Errorf("only one of -file, -url, -from-clipboard and -handoff may be given")
	}
	return nil
}

// load reads the selected image. Remote images are cached in st, which may be
// nil when no store is needed.
func (in inputFlags) load(ctx context.Context, st *storage.Store) (image.Image, string, error) {
	switch {
	case in.file != "":
		img, err := source.DecodeFile(in.file)
		if err != nil {
			return nil, "", err
		}
		return img, in.file, nil
	case in.url != "":
		var cache source.Cache
		if st != nil {
			cache = st
		}
		img, cached, err := source.NewFetcher(cache).Fetch(ctx, in.url)
		if err != nil {
			return nil, "", err
		}
		if cached {
			return img, in.url + " (cached)", nil
		}
		return img, in.url, nil
	case in.clipboard:
		img, err := readClipboardFn()
		if err != nil {
			return nil, "", fmt.Errorf("read clipboard image: %w", err)
		}
		return img, "clipboard", nil
	case in.handoff:
		if st == nil {
			return nil, "", fmt.Errorf("handoff requires a store")
		}
		h, err := source.TakeHandoff(ctx, st)
		if err != nil {
			return nil, "", err
		}
		return h.Image, h.Source, nil
	}
	return nil, "", nil
}

// writeOutput saves img, notifies, and optionally copies it to the clipboard.
func (r *root) writeOutput(img image.Image, output string, toClipboard bool, logf func(string, ...any)) error {
	if err := export.WriteFile(output, img); err != nil {
		return err
	}
	saved := output
	if abs, err := filepath.Abs(output); err == nil {
		saved = abs
	}
	logf("saved %s\n", saved)
	r.notifySave(saved)
	if toClipboard {
		if err := writeClipboardFn(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(output)
		logf("copied %s to clipboard\n", detail)
		r.notifyCopy(detail)
	}
	return nil
}
