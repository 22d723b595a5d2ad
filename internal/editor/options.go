package editor

import (
	"image"

	"github.com/example/annotateshot/internal/annotation"
	"github.com/example/annotateshot/internal/i18n"
	"github.com/example/annotateshot/internal/settings"
)

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithNotice sets the sink for translated status messages.
func WithNotice(fn func(msg string)) Option { return func(e *Editor) { e.notice = fn } }

// WithLayerListener is called with the layer list after every structural
// change.
func WithLayerListener(fn func([]annotation.Layer)) Option {
	return func(e *Editor) { e.onLayers = fn }
}

// WithTranslator sets the translator used for notices and layer names.
func WithTranslator(tr *i18n.Translator) Option { return func(e *Editor) { e.tr = tr } }

// WithSettingsStore persists userSettings to kv after every mutation.
func WithSettingsStore(kv settings.KV) Option { return func(e *Editor) { e.kv = kv } }

// WithSettings applies saved tool preferences. Saved annotations are ignored:
// every session starts with a clean slate.
func WithSettings(u settings.UserSettings) Option {
	return func(e *Editor) { e.prefs = u }
}

// WithViewport sets the area the canvas is fitted into, in logical pixels.
func WithViewport(w, h int) Option {
	return func(e *Editor) { e.viewport = image.Pt(w, h) }
}

// WithDPR sets the device pixel ratio of the canvas.
func WithDPR(dpr float64) Option { return func(e *Editor) { e.dpr = dpr } }

// WithResize selects how loaded images are sized: ResizeFit or ResizeOriginal.
func WithResize(opt string) Option { return func(e *Editor) { e.resize = opt } }
