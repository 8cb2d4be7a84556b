package wwind

import (
	"fmt"

	"github.com/1broseidon/wwind/internal/platform"
)

// Window is a short-lived view of a registered window. Views are cheap; the
// State hands out a fresh one to every handler call.
type Window struct {
	state  *State
	handle Handle
}

// Handle returns the window's handle.
func (w *Window) Handle() Handle { return w.handle }

// State returns the display state owning the window.
func (w *Window) State() *State { return w.state }

// ScheduleDestruction queues the window for destruction.
func (w *Window) ScheduleDestruction() {
	w.state.ScheduleDestruction(w.handle)
}

// OnClose sets the window's close handler. See State.OnClose.
func (w *Window) OnClose(h CloseHandler) bool { return w.state.OnClose(w.handle, h) }

// OnRedraw sets the window's redraw handler.
func (w *Window) OnRedraw(h RedrawHandler) bool { return w.state.OnRedraw(w.handle, h) }

// OnKeydown sets the window's key handler.
func (w *Window) OnKeydown(h KeydownHandler) bool { return w.state.OnKeydown(w.handle, h) }

// OnCloseFunc is OnClose for a plain function.
func (w *Window) OnCloseFunc(f func(s *State, w *Window)) bool {
	return w.OnClose(CloseFunc(f))
}

// OnRedrawFunc is OnRedraw for a plain function.
func (w *Window) OnRedrawFunc(f func(s *State, w *Window, region platform.Rect)) bool {
	return w.OnRedraw(RedrawFunc(f))
}

// OnKeydownFunc is OnKeydown for a plain function.
func (w *Window) OnKeydownFunc(f func(s *State, w *Window, key platform.Key)) bool {
	return w.OnKeydown(KeydownFunc(f))
}

func (w *Window) check() error {
	if w.state.closed {
		return ErrClosed
	}
	if _, ok := w.state.entries[w.handle]; !ok {
		return fmt.Errorf("%s: %w", w.handle, ErrUnknownWindow)
	}
	return nil
}

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) error {
	if err := w.check(); err != nil {
		return err
	}
	return w.state.backend.SetTitle(w.handle.native, title)
}

// Size returns the current client area size.
func (w *Window) Size() (width, height int, err error) {
	if err := w.check(); err != nil {
		return 0, 0, err
	}
	return w.state.backend.Size(w.handle.native)
}

// DrawingContext returns a context for drawing into the window.
func (w *Window) DrawingContext() (*DrawingContext, error) {
	if err := w.check(); err != nil {
		return nil, err
	}
	surface, err := w.state.backend.Surface(w.handle.native)
	if err != nil {
		return nil, fmt.Errorf("%s: acquire surface: %w", w.handle, err)
	}
	return &DrawingContext{handle: w.handle, surface: surface}, nil
}
