package wwind

import (
	"reflect"

	"github.com/1broseidon/wwind/internal/platform"
)

// CloseHandler is called when the user asks to close a window. Without one
// the window is scheduled for destruction.
type CloseHandler interface {
	HandleClose(s *State, w *Window)
}

// RedrawHandler is called when part of a window needs repainting.
type RedrawHandler interface {
	HandleRedraw(s *State, w *Window, region platform.Rect)
}

// KeydownHandler is called for every key press in a window.
type KeydownHandler interface {
	HandleKeydown(s *State, w *Window, key platform.Key)
}

// Releaser is implemented by handlers that hold resources. Release is
// called once the handler is replaced or its window is destroyed.
type Releaser interface {
	Release()
}

// CloseFunc adapts a function to CloseHandler.
type CloseFunc func(s *State, w *Window)

func (f CloseFunc) HandleClose(s *State, w *Window) { f(s, w) }

// RedrawFunc adapts a function to RedrawHandler.
type RedrawFunc func(s *State, w *Window, region platform.Rect)

func (f RedrawFunc) HandleRedraw(s *State, w *Window, region platform.Rect) { f(s, w, region) }

// KeydownFunc adapts a function to KeydownHandler.
type KeydownFunc func(s *State, w *Window, key platform.Key)

func (f KeydownFunc) HandleKeydown(s *State, w *Window, key platform.Key) { f(s, w, key) }

// entry holds the handler slots of one registered window.
type entry struct {
	close   CloseHandler
	redraw  RedrawHandler
	keydown KeydownHandler
}

func (e *entry) releaseAll() {
	release(e.close)
	release(e.redraw)
	release(e.keydown)
	*e = entry{}
}

func release(h any) {
	if r, ok := h.(Releaser); ok {
		r.Release()
	}
}

// sameHandler reports whether a and b are the same handler value. Func
// adapters are never considered equal.
func sameHandler(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	return a == b
}

// replaceSlot stores h in *slot and releases the previous occupant.
func replaceSlot[H any](slot *H, h H) {
	old := *slot
	*slot = h
	if !sameHandler(any(old), any(h)) {
		release(any(old))
	}
}
