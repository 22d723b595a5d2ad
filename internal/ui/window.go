package ui

import (
	"context"
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// Run opens the window and blocks until it is closed.
func (a *App) Run() { driver.Main(a.Main) }

// Main is the shiny entry point.
func (a *App) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: "AnnotateShot"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	if a.onClose != nil {
		defer a.onClose()
	}

	p := newPainter(func(ctx context.Context, f frame) { publish(ctx, s, w, f) })
	defer p.stop()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			a.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			p.send(a.frame())
		case mouse.Event:
			if a.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			repaint, quit := a.handleKey(e)
			if quit {
				return
			}
			if repaint {
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

// painter draws frames on its own goroutine, off the event loop. Only the
// newest waiting frame is kept.
type painter struct {
	ch   chan frame
	done chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
}

func newPainter(paint func(context.Context, frame)) *painter {
	p := &painter{ch: make(chan frame, 1), done: make(chan struct{})}
	go func() {
		defer close(p.done)
		for f := range p.ch {
			ctx, cancel := context.WithCancel(context.Background())
			p.mu.Lock()
			p.cancel = cancel
			p.mu.Unlock()
			paint(ctx, f)
			cancel()
		}
	}()
	return p
}

// send queues f, replacing a frame that has not started. It must be called
// from a single goroutine.
func (p *painter) send(f frame) {
	select {
	case <-p.ch:
	default:
	}
	p.ch <- f
}

// stop drops any waiting frame, cancels the one being drawn and waits for the
// painter to exit.
func (p *painter) stop() {
	select {
	case <-p.ch:
	default:
	}
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
	close(p.ch)
	<-p.done
}

func publish(ctx context.Context, s screen.Screen, w screen.Window, f frame) {
	b, err := s.NewBuffer(f.layout.Window)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	drawFrame(b.RGBA(), f)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
