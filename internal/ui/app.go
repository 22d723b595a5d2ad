// Package ui is the interactive editor window.
package ui

import (
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/annotateshot/internal/annotation"
	"github.com/example/annotateshot/internal/clipboard"
	"github.com/example/annotateshot/internal/editor"
	"github.com/example/annotateshot/internal/export"
	"github.com/example/annotateshot/internal/i18n"
	"github.com/example/annotateshot/internal/notify"
	"github.com/example/annotateshot/internal/source"
	"github.com/example/annotateshot/internal/theme"
)

// App connects window input to an editor.
type App struct {
	ed       *editor.Editor
	tr       *i18n.Translator
	theme    *theme.Theme
	notifier *notify.Notifier
	saveDir  string
	width    int
	height   int

	copyImage  func(image.Image) error
	pasteImage func() (image.Image, error)
	now        func() time.Time

	layout  Layout
	status  string
	typing  bool
	pressed bool
	onClose func()
}

// Option configures an App.
type Option func(*App)

// WithTheme sets the window palette.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.theme = t } }

// WithNotifier sends desktop notifications for saves, copies and crops.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.notifier = n } }

// WithSaveDir sets where Ctrl+S writes images.
func WithSaveDir(dir string) Option { return func(a *App) { a.saveDir = dir } }

// WithTranslator sets the language of the window and the editor notices.
func WithTranslator(tr *i18n.Translator) Option { return func(a *App) { a.tr = tr } }

// WithWindowSize sets the initial window size.
func WithWindowSize(w, h int) Option { return func(a *App) { a.width, a.height = w, h } }

// WithCanvasArea sizes the window so the area left for the canvas is w by h
// window pixels.
func WithCanvasArea(w, h int) Option {
	return func(a *App) { a.width, a.height = w+sidebarWidth, h+statusHeight }
}

// WithOnClose is called once the window has closed.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates the window state and the editor it drives. Editor notices are
// routed to the status bar.
func New(edOpts []editor.Option, opts ...Option) *App {
	a := &App{
		width:      1480,
		height:     860,
		copyImage:  clipboard.WriteImage,
		pasteImage: source.Paste,
		now:        time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	if a.tr == nil {
		a.tr = i18n.New("en")
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	a.status = a.tr.T("status.ready", nil)
	a.ed = editor.New(append(edOpts, editor.WithTranslator(a.tr), editor.WithNotice(a.notice))...)
	a.resize(a.width, a.height)
	return a
}

// Editor returns the editor driven by the window.
func (a *App) Editor() *editor.Editor { return a.ed }

func (a *App) notice(msg string) {
	a.status = msg
	log.Printf("status: %s", msg)
}

func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	a.relayout()
	a.ed.SetViewport(a.layout.Viewport().X, a.layout.Viewport().Y)
}

func (a *App) relayout() {
	var dev image.Point
	if sz := a.ed.CanvasSize(); sz != (image.Point{}) {
		dpr := a.ed.DPR()
		dev = image.Pt(int(float64(sz.X)*dpr+0.5), int(float64(sz.Y)*dpr+0.5))
	}
	a.layout = NewLayout(image.Pt(a.width, a.height), dev, a.ed.DPR())
}

// frame snapshots everything the painter needs.
func (a *App) frame() frame {
	a.relayout()
	f := frame{
		layout:  a.layout,
		layers:  a.ed.Layers(),
		status:  a.status,
		mode:    a.tr.T("mode."+a.ed.Mode().String(), nil),
		typing:  a.typing,
		pending: a.ed.PendingText(),
		theme:   a.theme,
	}
	if img := a.ed.Render(); img != nil {
		f.canvas = image.NewRGBA(img.Bounds())
		copy(f.canvas.Pix, img.Pix)
	}
	return f
}

// handleMouse forwards a mouse event. It reports whether a repaint is needed.
func (a *App) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	if !a.pressed && e.Direction == mouse.DirPress {
		if i := a.layout.LayerAt(p, len(a.ed.Layers())); i >= 0 {
			return a.layerClick(i, e.Button)
		}
	}
	if e.Button != mouse.ButtonLeft && e.Button != mouse.ButtonNone {
		return false
	}
	cx, cy, inside := a.layout.ToCanvas(e.X, e.Y)
	switch e.Direction {
	case mouse.DirPress:
		if !inside {
			return false
		}
		a.pressed = true
		a.ed.PointerDown(cx, cy)
	case mouse.DirRelease:
		if !a.pressed {
			return false
		}
		a.pressed = false
		a.ed.PointerUp(cx, cy)
	case mouse.DirNone:
		if !a.pressed {
			return false
		}
		if !inside {
			a.pressed = false
			a.ed.PointerLeave()
			return true
		}
		a.ed.PointerMove(cx, cy)
	default:
		return false
	}
	return true
}

// layerClick toggles a layer with the left button and deletes it with the
// right one. The background cannot be deleted.
func (a *App) layerClick(i int, b mouse.Button) bool {
	l := a.ed.Layers()[i]
	var id int64
	if !l.Background {
		id = l.Annotation.ID
	}
	switch b {
	case mouse.ButtonLeft:
		return a.ed.SetVisible(id, !l.Visible)
	case mouse.ButtonRight:
		if l.Background {
			return false
		}
		return a.ed.Remove(id)
	}
	return false
}

// handleKey applies a key press. quit is true when the window should close.
func (a *App) handleKey(e key.Event) (repaint, quit bool) {
	if e.Direction != key.DirPress {
		return false, false
	}
	if a.typing {
		return a.typeKey(e), false
	}
	ctrl := e.Modifiers&key.ModControl != 0
	if ctrl {
		switch e.Code {
		case key.CodeZ:
			a.ed.Undo()
		case key.CodeS:
			a.save()
		case key.CodeC:
			a.copy()
		case key.CodeV:
			a.paste()
		default:
			return false, false
		}
		return true, false
	}
	switch e.Code {
	case key.CodeReturnEnter:
		if err := a.ed.ApplyCrop(); err == nil {
			a.notifier.Crop(a.ed.Background())
		} else if !errors.Is(err, editor.ErrNoSelection) {
			log.Printf("crop: %v", err)
		}
		return true, false
	case key.CodeEscape:
		a.ed.CancelCrop()
		return true, false
	case key.CodeDeleteBackspace:
		if l := a.ed.Layers(); len(l) > 1 {
			a.ed.Remove(l[len(l)-1].Annotation.ID)
		}
		return true, false
	}
	switch unicode.ToLower(e.Rune) {
	case 'n':
		a.ed.SetMode(editor.ModeNumber)
	case 's':
		a.ed.SetMode(editor.ModeShape)
	case 'r':
		a.ed.SetShape(annotation.ShapeRectangle)
	case 'o':
		a.ed.SetShape(annotation.ShapeCircle)
	case 'a':
		a.ed.SetShape(annotation.ShapeArrow)
	case 'f':
		a.ed.SetFill((a.ed.Fill() + 1) % (annotation.FillMosaic + 1))
	case 't':
		a.ed.SetMode(editor.ModeText)
		a.ed.SetPendingText("")
		a.typing = true
	case 'e':
		a.ed.SetMode(editor.ModeEmoji)
	case 'c':
		a.ed.SetMode(editor.ModeCrop)
	case '+', '=':
		a.ed.SetSize(a.ed.Size() + 2)
	case '-':
		a.ed.SetSize(max(2, a.ed.Size()-2))
	case 'q':
		return false, true
	default:
		return false, false
	}
	return true, false
}

// typeKey edits the pending text. Enter finishes typing, Esc discards it.
func (a *App) typeKey(e key.Event) bool {
	text := a.ed.PendingText()
	switch e.Code {
	case key.CodeReturnEnter:
		a.typing = false
		return true
	case key.CodeEscape:
		a.typing = false
		a.ed.SetPendingText("")
		return true
	case key.CodeDeleteBackspace:
		if text != "" {
			_, n := utf8.DecodeLastRuneInString(text)
			a.ed.SetPendingText(text[:len(text)-n])
		}
		return true
	}
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		a.ed.SetPendingText(text + string(e.Rune))
		return true
	}
	return false
}

func (a *App) save() {
	img := a.ed.Compose()
	if img == nil {
		a.notice(a.tr.T("status.noImage", nil))
		return
	}
	path := filepath.Join(a.saveDir, export.DefaultName(a.now(), export.PNGFormat))
	if err := export.WriteFile(path, img); err != nil {
		a.notice(fmt.Sprintf("save: %v", err))
		return
	}
	a.notifier.Save(path)
	a.notice(a.tr.Tf("status.saved", "Path", path))
}

func (a *App) copy() {
	img := a.ed.Compose()
	if img == nil {
		a.notice(a.tr.T("status.noImage", nil))
		return
	}
	if err := a.copyImage(img); err != nil {
		a.notice(fmt.Sprintf("copy: %v", err))
		return
	}
	b := img.Bounds()
	a.notifier.Copy(fmt.Sprintf("%dx%d image", b.Dx(), b.Dy()))
	a.notice(a.tr.T("status.copied", nil))
}

func (a *App) paste() {
	img, err := a.pasteImage()
	if err != nil {
		if errors.Is(err, clipboard.ErrEmpty) {
			a.notice(a.tr.T("status.clipboardEmpty", nil))
		} else {
			a.notice(a.tr.Tf("status.decodeFailed", "Error", err))
		}
		return
	}
	if err := a.ed.LoadImage(img); err != nil {
		a.notice(a.tr.Tf("status.decodeFailed", "Error", err))
	}
}
