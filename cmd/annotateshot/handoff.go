package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/annotateshot/internal/export"
	"github.com/example/annotateshot/internal/source"
)

// handoffCmd leaves an image for the next annotate session, or takes it.
type handoffCmd struct {
	*root
	fs     *flag.FlagSet
	action string
	in     inputFlags
	src    string
	output string
	out    io.Writer
}

func (h *handoffCmd) FlagSet() *flag.FlagSet { return h.fs }
func (h *handoffCmd) Program() string        { return h.root.program + " handoff" }

func parseHandoffCmd(args []string, r *root) (*handoffCmd, error) {
	fs := flag.NewFlagSet("handoff", flag.ContinueOnError)
	h := &handoffCmd{root: r, fs: fs, out: os.Stderr}
	fs.Usage = usageFunc(h)
	fs.StringVar(&h.in.file, "file", "", "put: image file to hand off")
	fs.StringVar(&h.in.url, "url", "", "put: image URL to hand off")
	fs.BoolVar(&h.in.clipboard, "from-clipboard", false, "put: hand off the clipboard image")
	fs.StringVar(&h.src, "source", "", "put: where the image came from, such as a page URL")
	fs.StringVar(&h.output, "output", "", "take: write the pending image here")
	flagArgs, positionals, err := splitArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) != 1 {
		return nil, &UsageError{of: h}
	}
	if err := h.in.validate(); err != nil {
		return nil, err
	}
	switch positionals[0] {
	case "put":
		if h.in.count() == 0 {
			return nil, fmt.Errorf("put requires -file, -url or -from-clipboard")
		}
	case "take":
		if h.output == "" {
			return nil, fmt.Errorf("take requires -output")
		}
	default:
		return nil, fmt.Errorf("unknown handoff command: %s", positionals[0])
	}
	h.action = positionals[0]
	return h, nil
}

func (h *handoffCmd) Run() error {
	ctx := context.Background()
	st, err := h.root.store(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if h.action == "take" {
		got, err := source.TakeHandoff(ctx, st)
		if err != nil {
			return err
		}
		if err := export.WriteFile(h.output, got.Image); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "wrote %s from %s\n", h.output, got.Source)
		return nil
	}

	img, from, err := h.in.load(ctx, st)
	if err != nil {
		return err
	}
	src := h.src
	if src == "" {
		src = from
	}
	if err := source.PutHandoff(ctx, st, img, src); err != nil {
		return err
	}
	b := img.Bounds()
	fmt.Fprintf(h.out, "handed off %dx%d image from %s\n", b.Dx(), b.Dy(), src)
	return nil
}
