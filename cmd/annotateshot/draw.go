package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/example/annotateshot/internal/annotation"
	"github.com/example/annotateshot/internal/editor"
)

// drawCmd places one annotation, or a saved annotation list, on an image
// without opening a window.
type drawCmd struct {
	*root
	fs          *flag.FlagSet
	in          inputFlags
	output      string
	toClipboard bool
	colorSpec   string
	color       color.RGBA
	size        int
	fill        string
	lineWidth   int
	dpr         float64

	op      string
	payload annotation.Payload
	imports []*annotation.Annotation
}

func (d *drawCmd) FlagSet() *flag.FlagSet { return d.fs }
func (d *drawCmd) Program() string {
	if d.root == nil {
		return "annotateshot draw"
	}
	return d.root.program + " draw"
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.in.file, "file", "", "input image file")
	fs.StringVar(&d.in.url, "url", "", "input image URL")
	fs.BoolVar(&d.in.clipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.StringVar(&d.output, "output", "", "output file, .png or .pdf (defaults to the input file)")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.StringVar(&d.colorSpec, "color", "red", "colour name or hex value")
	fs.IntVar(&d.size, "size", 20, "number radius, text size or emoji size")
	fs.StringVar(&d.fill, "fill", "none", "rectangle and circle fill: none, solid, blur or mosaic")
	fs.IntVar(&d.lineWidth, "line-width", 3, "shape stroke width")
	fs.Float64Var(&d.dpr, "dpr", 1, "device pixel ratio of the output")

	flagArgs, positionals, err := splitArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	if err := d.in.validate(); err != nil {
		return nil, err
	}
	if d.in.count() == 0 {
		return nil, fmt.Errorf("input file is required")
	}
	if d.output == "" {
		if d.in.file == "" {
			return nil, fmt.Errorf("output file is required unless reading from -file")
		}
		d.output = d.in.file
	}
	if d.color, err = parseColor(d.colorSpec); err != nil {
		return nil, err
	}
	if d.size <= 0 || d.lineWidth <= 0 || d.dpr <= 0 {
		return nil, fmt.Errorf("size, line-width and dpr must be positive")
	}
	fill, err := annotation.ParseFill(d.fill)
	if err != nil {
		return nil, err
	}

	d.op = strings.ToLower(positionals[0])
	rest := positionals[1:]
	switch d.op {
	case "number":
		if len(rest) != 2 && len(rest) != 3 {
			return nil, fmt.Errorf("number requires x y [value]")
		}
		v, err := expectNumbers(rest[:2], 2, d.op)
		if err != nil {
			return nil, err
		}
		n := &annotation.Number{X: v[0], Y: v[1]}
		if len(rest) == 3 {
			if n.Display, err = strconv.Atoi(rest[2]); err != nil || n.Display <= 0 {
				return nil, fmt.Errorf("invalid number value %q", rest[2])
			}
		}
		d.payload = n
	case "rect", "rectangle", "circle", "arrow":
		v, err := expectNumbers(rest, 4, d.op)
		if err != nil {
			return nil, err
		}
		kind, err := annotation.ParseShape(d.op)
		if err != nil {
			return nil, err
		}
		if kind == annotation.ShapeArrow && fill != annotation.FillNone {
			return nil, fmt.Errorf("arrows cannot be filled")
		}
		d.payload = &annotation.Shape{Shape: kind, Fill: fill, LineWidth: d.lineWidth, StartX: v[0], StartY: v[1], EndX: v[2], EndY: v[3]}
	case "text", "emoji":
		if len(rest) < 3 {
			return nil, fmt.Errorf("%s requires x y and content", d.op)
		}
		v, err := expectNumbers(rest[:2], 2, d.op)
		if err != nil {
			return nil, err
		}
		content := strings.Join(rest[2:], " ")
		if strings.TrimSpace(content) == "" {
			return nil, fmt.Errorf("%s content cannot be empty", d.op)
		}
		if d.op == "text" {
			d.payload = &annotation.Text{X: v[0], Y: v[1], Text: content}
		} else {
			d.payload = &annotation.Emoji{X: v[0], Y: v[1], Glyph: content}
		}
	case "import":
		if len(rest) != 1 {
			return nil, fmt.Errorf("import requires one JSON file")
		}
		data, err := os.ReadFile(rest[0])
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &d.imports); err != nil {
			return nil, fmt.Errorf("parse %s: %w", rest[0], err)
		}
	default:
		return nil, fmt.Errorf("unsupported operation %q", d.op)
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	img, _, err := d.in.load(context.Background(), nil)
	if err != nil {
		return err
	}
	ed := editor.New(editor.WithResize(editor.ResizeOriginal), editor.WithDPR(d.dpr))
	if err := ed.LoadImage(img); err != nil {
		return err
	}
	ed.SetColor(d.color)
	ed.SetSize(d.size)
	ed.SetLineWidth(d.lineWidth)
	if d.imports != nil {
		if err := ed.Import(d.imports); err != nil {
			return err
		}
	} else {
		if n, ok := d.payload.(*annotation.Number); ok && n.Display == 0 {
			n.Display = ed.Store().MaxNumber() + 1
		}
		if _, err := ed.Add(d.payload); err != nil {
			return err
		}
	}
	return d.root.writeOutput(ed.Compose(), d.output, d.toClipboard, func(f string, a ...any) {
		fmt.Fprintf(os.Stderr, f, a...)
	})
}
