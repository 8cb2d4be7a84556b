package wwind

import (
	"fmt"

	"github.com/1broseidon/wwind/internal/logging"
	"github.com/1broseidon/wwind/internal/platform"
)

func (s *State) handle(native platform.NativeWindow) Handle {
	return Handle{kind: s.kind, native: native}
}

func (s *State) view(h Handle) *Window {
	return &Window{state: s, handle: h}
}

// AddWindow creates and shows a window. Note the argument order: height
// comes before width.
func (s *State) AddWindow(x, y int16, height, width uint16, title string) (*Window, error) {
	if s.closed {
		return nil, ErrClosed
	}
	native, err := s.backend.CreateWindow(int(x), int(y), int(width), int(height), title)
	if err != nil {
		return nil, fmt.Errorf("create window %q: %w", title, err)
	}
	h := s.handle(native)
	if _, dup := s.entries[h]; dup {
		// Native ids are unique among live windows; a repeat means the
		// backend reused an id we still track.
		return nil, fmt.Errorf("create window %q: backend returned live id %s", title, h)
	}
	s.entries[h] = &entry{}
	s.order = append(s.order, h)
	logging.L().Debug("window created", "window", h.String(), "title", title)
	return s.view(h), nil
}

// Window returns a view of a registered window.
func (s *State) Window(h Handle) (*Window, bool) {
	if _, ok := s.entries[h]; !ok {
		return nil, false
	}
	return s.view(h), true
}

// Windows returns the registered handles in creation order, including those
// scheduled for destruction.
func (s *State) Windows() []Handle {
	return append([]Handle(nil), s.order...)
}

// WindowsExist reports whether any window is registered.
func (s *State) WindowsExist() bool { return len(s.entries) > 0 }

// WindowCount returns the number of registered windows.
func (s *State) WindowCount() int { return len(s.entries) }

// Pending reports whether h is scheduled for destruction.
func (s *State) Pending(h Handle) bool { return s.queue.contains(h) }

// ScheduleDestruction queues h to be destroyed at the end of the current
// event cycle. Scheduling twice, or scheduling an unknown handle, does
// nothing.
func (s *State) ScheduleDestruction(h Handle) {
	if _, ok := s.entries[h]; !ok {
		logging.L().Debug("not scheduling unknown window", "window", h.String())
		return
	}
	if s.queue.push(h) {
		logging.L().Debug("window scheduled for destruction", "window", h.String())
	}
}

// DrainDestructionQueue destroys every scheduled window, most recently
// scheduled first, and releases its handlers. It does nothing while a
// handler is running; the event loop drains after each event.
func (s *State) DrainDestructionQueue() {
	if s.depth > 0 {
		logging.L().Warn("refusing to drain destruction queue from a handler", "pending", s.queue.len())
		return
	}
	for {
		h, ok := s.queue.pop()
		if !ok {
			return
		}
		e, ok := s.entries[h]
		if !ok {
			continue
		}
		if err := s.backend.DestroyWindow(h.native); err != nil {
			logging.L().Warn("failed to destroy window", "window", h.String(), "err", err)
		}
		delete(s.entries, h)
		s.removeFromOrder(h)
		e.releaseAll()
		logging.L().Debug("window destroyed", "window", h.String())
	}
}

func (s *State) removeFromOrder(h Handle) {
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// OnClose sets the close handler of h, releasing the previous one. It
// returns false if h is not registered. A nil handler clears the slot.
func (s *State) OnClose(h Handle, handler CloseHandler) bool {
	e, ok := s.entries[h]
	if !ok {
		return false
	}
	replaceSlot(&e.close, handler)
	return true
}

// OnRedraw sets the redraw handler of h. See OnClose.
func (s *State) OnRedraw(h Handle, handler RedrawHandler) bool {
	e, ok := s.entries[h]
	if !ok {
		return false
	}
	replaceSlot(&e.redraw, handler)
	return true
}

// OnKeydown sets the key handler of h. See OnClose.
func (s *State) OnKeydown(h Handle, handler KeydownHandler) bool {
	e, ok := s.entries[h]
	if !ok {
		return false
	}
	replaceSlot(&e.keydown, handler)
	return true
}
