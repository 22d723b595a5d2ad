package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/example/annotateshot/internal/crop"
	"github.com/example/annotateshot/internal/editor"
)

// cropCmd cuts a region out of an image, optionally with a torn edge.
type cropCmd struct {
	*root
	fs          *flag.FlagSet
	in          inputFlags
	output      string
	toClipboard bool
	styleName   string
	style       crop.Style
	coords      []float64
}

func (c *cropCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *cropCmd) Program() string {
	if c.root == nil {
		return "annotateshot crop"
	}
	return c.root.program + " crop"
}

func parseCropCmd(args []string, r *root) (*cropCmd, error) {
	fs := flag.NewFlagSet("crop", flag.ContinueOnError)
	c := &cropCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.in.file, "file", "", "input image file")
	fs.StringVar(&c.in.url, "url", "", "input image URL")
	fs.BoolVar(&c.in.clipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.StringVar(&c.output, "output", "", "output file, .png or .pdf (defaults to the input file)")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.StringVar(&c.styleName, "style", "basic", "basic or torn")

	flagArgs, positionals, err := splitArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) == 0 {
		return nil, &UsageError{of: c}
	}
	if c.coords, err = expectNumbers(positionals, 4, "crop"); err != nil {
		return nil, err
	}
	if err := c.in.validate(); err != nil {
		return nil, err
	}
	if c.in.count() == 0 {
		return nil, fmt.Errorf("input file is required")
	}
	if c.output == "" {
		if c.in.file == "" {
			return nil, fmt.Errorf("output file is required unless reading from -file")
		}
		c.output = c.in.file
	}
	if c.style, err = crop.ParseStyle(c.styleName); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *cropCmd) Run() error {
	img, _, err := c.in.load(context.Background(), nil)
	if err != nil {
		return err
	}
	ed := editor.New(editor.WithResize(editor.ResizeOriginal))
	if err := ed.LoadImage(img); err != nil {
		return err
	}
	ed.SetCropStyle(c.style)
	ed.SetMode(editor.ModeCrop)
	ed.PointerDown(c.coords[0], c.coords[1])
	ed.PointerUp(c.coords[2], c.coords[3])
	if ed.CropState() != crop.PreviewReady {
		return fmt.Errorf("crop %v: %w", c.coords, crop.ErrTooSmall)
	}
	if err := ed.ApplyCrop(); err != nil {
		return fmt.Errorf("crop: %w", err)
	}
	if c.root != nil && c.root.notifier != nil {
		c.root.notifier.Crop(ed.Background())
	}
	return c.root.writeOutput(ed.Background(), c.output, c.toClipboard, func(f string, a ...any) {
		fmt.Fprintf(os.Stderr, f, a...)
	})
}
