package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/input"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

// EventTranslator turns tcell events into controller events. Mouse reports
// carry the full button state, so presses and releases are derived from
// the previous report.
type EventTranslator struct {
	view    func() Viewport
	buttons tcell.ButtonMask
}

// NewEventTranslator creates a translator reading the viewport on demand
func NewEventTranslator(view func() Viewport) *EventTranslator {
	return &EventTranslator{view: view}
}

// Translate converts one tcell event. quit is set for Escape and Ctrl-C.
func (t *EventTranslator) Translate(ev tcell.Event) (events []input.Event, quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return nil, true
		case tcell.KeyRune:
			return []input.Event{input.KeyDown{Key: input.NormalizeKey(string(ev.Rune()))}}, false
		}
	case *tcell.EventMouse:
		return t.translateMouse(ev), false
	}
	return nil, false
}

func (t *EventTranslator) translateMouse(ev *tcell.EventMouse) []input.Event {
	cx, cy := ev.Position()
	p := t.view().CellToWorld(cx, cy)
	prev, now := t.buttons, ev.Buttons()
	t.buttons = now

	var out []input.Event
	pressed := func(b tcell.ButtonMask) bool { return now&b != 0 && prev&b == 0 }
	released := func(b tcell.ButtonMask) bool { return now&b == 0 && prev&b != 0 }

	switch {
	case pressed(tcell.ButtonPrimary):
		out = append(out, input.PointerDown{X: p.X, Y: p.Y, Button: input.ButtonLeft})
	case released(tcell.ButtonPrimary):
		out = append(out, input.PointerUp{X: p.X, Y: p.Y, Button: input.ButtonLeft})
	case now&tcell.ButtonPrimary != 0:
		out = append(out, input.PointerDrag{X: p.X, Y: p.Y})
	}
	if pressed(tcell.ButtonSecondary) {
		out = append(out, input.PointerDown{X: p.X, Y: p.Y, Button: input.ButtonRight})
	}
	if released(tcell.ButtonSecondary) {
		out = append(out, input.PointerUp{X: p.X, Y: p.Y, Button: input.ButtonRight})
	}
	return out
}

// TerminalFrontend runs a session inside a terminal. Input handling,
// ticking and drawing all happen on the goroutine calling Run.
type TerminalFrontend struct {
	screen     tcell.Screen
	session    *engine.Session
	controller *input.Controller
	renderer   *TerminalRenderer
	translator *EventTranslator
	logger     *logging.Logger
	frame      time.Duration
}

// NewTerminalFrontend wires a session and controller to a tcell screen.
// The screen must not be initialized yet.
func NewTerminalFrontend(screen tcell.Screen, session *engine.Session, controller *input.Controller, logger *logging.Logger) *TerminalFrontend {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	cfg := session.Config()
	return &TerminalFrontend{
		screen:     screen,
		session:    session,
		controller: controller,
		logger:     logger.With("component", "terminal"),
		frame:      time.Duration(cfg.Physics.TimeStep * float64(time.Second)),
	}
}

// Run initializes the screen and plays until ctx is done or the player
// quits
func (f *TerminalFrontend) Run(ctx context.Context) error {
	if err := f.screen.Init(); err != nil {
		return logging.WrapError(err, "initialize terminal")
	}
	defer f.screen.Fini()

	f.screen.EnableMouse()
	f.screen.HideCursor()

	cfg := f.session.Config()
	f.renderer = NewTerminalRenderer(f.screen, cfg.Screen.Width, cfg.Screen.Height, Legend(cfg.Keys))
	f.translator = NewEventTranslator(f.renderer.Viewport)

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go f.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(f.frame)
	defer ticker.Stop()

	f.logger.Info(ctx, "terminal frontend started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if f.handle(ctx, ev) {
				f.logger.Info(ctx, "player quit")
				return nil
			}
		case <-ticker.C:
			if err := f.controller.Handle(input.Tick{}); err != nil {
				return err
			}
			f.renderer.DrawFrame(f.session.Snapshot())
		}
	}
}

func (f *TerminalFrontend) handle(ctx context.Context, ev tcell.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		f.screen.Sync()
		f.renderer.Resize()
		return false
	}
	events, quit := f.translator.Translate(ev)
	for _, e := range events {
		if err := f.controller.Handle(e); err != nil {
			f.logger.Warn(ctx, "input rejected", "error", err.Error())
		}
	}
	return quit
}
