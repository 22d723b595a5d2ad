package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/example/annotateshot/internal/config"
	"github.com/example/annotateshot/internal/editor"
	"github.com/example/annotateshot/internal/settings"
	"github.com/example/annotateshot/internal/source"
	"github.com/example/annotateshot/internal/storage"
	"github.com/example/annotateshot/internal/ui"
)

// runWindowFn is replaced in tests.
var runWindowFn = func(a *ui.App) { a.Run() }

// annotateCmd opens the editor window.
type annotateCmd struct {
	*root
	fs      *flag.FlagSet
	in      inputFlags
	resize  string
	dpr     float64
	saveDir string
	app     *ui.App
}

func (a *annotateCmd) FlagSet() *flag.FlagSet { return a.fs }
func (a *annotateCmd) Program() string {
	if a.root == nil {
		return "annotateshot annotate"
	}
	return a.root.program + " annotate"
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	a := &annotateCmd{root: r, fs: fs}
	fs.Usage = usageFunc(a)
	d := config.New().Defaults
	saveDir := ""
	if r != nil {
		d = r.config.Defaults
		saveDir = r.config.SaveDir
	}
	fs.StringVar(&a.in.file, "file", "", "image file to open")
	fs.StringVar(&a.in.url, "url", "", "remote image to open, cached in the store")
	fs.BoolVar(&a.in.clipboard, "from-clipboard", false, "open the image on the clipboard")
	fs.BoolVar(&a.in.handoff, "handoff", false, "open the pending capture handoff")
	fs.StringVar(&a.resize, "resize", editor.ResizeFit, "fit (scale large images to the window) or original")
	fs.Float64Var(&a.dpr, "dpr", d.DPR, "device pixel ratio of the canvas")
	fs.StringVar(&a.saveDir, "save-dir", saveDir, "directory for Ctrl+S")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := a.in.validate(); err != nil {
		return nil, err
	}
	if a.resize != editor.ResizeFit && a.resize != editor.ResizeOriginal {
		return nil, fmt.Errorf("unknown resize option %q", a.resize)
	}
	if a.dpr <= 0 {
		return nil, fmt.Errorf("dpr must be positive")
	}
	return a, nil
}

// preferences merges rc file defaults with the saved user settings.
func preferences(ctx context.Context, d config.Defaults, kv settings.KV) settings.UserSettings {
	base := settings.Overlay(settings.Defaults(), settings.UserSettings{
		Mode:      d.Mode,
		Color:     d.Color,
		Size:      d.Size,
		Shape:     d.Shape,
		FillType:  d.Fill,
		LineWidth: d.LineWidth,
		CropStyle: d.CropStyle,
	})
	if kv == nil {
		return base
	}
	u, err := settings.Load(ctx, kv, base)
	if err != nil {
		log.Printf("settings: %v", err)
	}
	return u
}

func (a *annotateCmd) Run() error {
	ctx := context.Background()
	st, err := a.root.store(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if n, err := st.PruneCache(ctx, storage.DefaultCacheAge); err != nil {
		log.Printf("prune cache: %v", err)
	} else if n > 0 {
		log.Printf("pruned %d cached images", n)
	}

	d := a.root.config.Defaults
	edOpts := []editor.Option{
		editor.WithSettingsStore(st),
		editor.WithSettings(preferences(ctx, d, st)),
		editor.WithDPR(a.dpr),
		editor.WithResize(a.resize),
	}
	a.app = ui.New(edOpts,
		ui.WithTheme(a.root.activeTheme),
		ui.WithNotifier(a.root.notifier),
		ui.WithSaveDir(a.saveDir),
		ui.WithTranslator(a.root.tr),
		ui.WithCanvasArea(d.ViewportWidth, d.ViewportHeight),
	)

	in := a.in
	if in.count() == 0 {
		in.handoff = true
	}
	img, from, err := in.load(ctx, st)
	switch {
	case errors.Is(err, source.ErrNoHandoff):
	case err != nil:
		return err
	case img != nil:
		fmt.Fprintf(os.Stderr, "opened %s\n", from)
		if err := a.app.Editor().LoadImage(img); err != nil {
			return err
		}
	}
	runWindowFn(a.app)
	return nil
}
