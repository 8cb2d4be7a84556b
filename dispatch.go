package wwind

import (
	"github.com/1broseidon/wwind/internal/logging"
	"github.com/1broseidon/wwind/internal/platform"
)

// HandleEvent routes one event to the handler of its window and flushes the
// backend. Events for unknown windows are ignored. A close request without a
// handler schedules the window for destruction; redraw and key events
// without a handler are dropped.
//
// While a handler runs its slot is empty, so a nested HandleEvent for the
// same window and event type gets the default behavior. Destruction never
// happens inside HandleEvent.
func (s *State) HandleEvent(ev platform.Event) {
	if s.closed {
		return
	}
	s.depth++
	defer func() { s.depth-- }()

	s.dispatch(ev)
	if err := s.backend.Flush(); err != nil {
		logging.L().Warn("flush failed", "backend", string(s.kind), "err", err)
	}
}

func (s *State) dispatch(ev platform.Event) {
	h := s.handle(ev.Window)
	e, ok := s.entries[h]
	if !ok {
		logging.L().Warn("event for unknown window", "window", h.String(), "event", ev.Type.String())
		return
	}

	switch ev.Type {
	case platform.EventCloseRequested:
		ran := runSlot(s, h, e, func(e *entry) *CloseHandler { return &e.close }, func(c CloseHandler) {
			c.HandleClose(s, s.view(h))
		})
		if !ran {
			s.ScheduleDestruction(h)
		}
	case platform.EventExpose:
		runSlot(s, h, e, func(e *entry) *RedrawHandler { return &e.redraw }, func(r RedrawHandler) {
			r.HandleRedraw(s, s.view(h), ev.Region)
		})
	case platform.EventKeyDown:
		runSlot(s, h, e, func(e *entry) *KeydownHandler { return &e.keydown }, func(k KeydownHandler) {
			k.HandleKeydown(s, s.view(h), ev.Key)
		})
	default:
		logging.L().Debug("ignoring event", "window", h.String(), "type", int(ev.Type))
	}
}

// runSlot takes the handler out of its slot, calls it, and puts it back if
// the window is still registered and nothing else was stored meanwhile.
// A handler that stored itself again stays registered. Otherwise the handler
// is released. It reports whether a handler ran.
func runSlot[H any](s *State, h Handle, e *entry, slot func(*entry) *H, call func(H)) bool {
	p := slot(e)
	handler := *p
	if any(handler) == nil {
		return false
	}
	var empty H
	*p = empty

	call(handler)

	if cur, ok := s.entries[h]; ok && cur == e {
		p := slot(cur)
		if any(*p) == nil {
			*p = handler
			return true
		}
		// Registered itself again while running; it is still in use.
		if sameHandler(any(*p), any(handler)) {
			return true
		}
	}
	release(any(handler))
	return true
}

// Step waits for one native event, dispatches it, and then destroys the
// windows scheduled meanwhile. It returns platform.ErrDisconnected when the
// window system connection is gone.
func (s *State) Step() error {
	if s.closed {
		return ErrClosed
	}
	if s.depth > 0 {
		return ErrInCallback
	}

	var (
		ev  platform.Event
		got bool
	)
	err := s.backend.WaitForEvent(func(e platform.Event) {
		ev, got = e, true
	})
	if err != nil {
		return err
	}
	if got {
		s.HandleEvent(ev)
	}
	s.DrainDestructionQueue()
	return nil
}

// Run processes events until RequestExit is called or the last window is
// destroyed.
func (s *State) Run() error {
	for !s.exit && s.WindowsExist() {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunWith calls init, typically to create windows and register handlers,
// and then runs the event loop.
func (s *State) RunWith(init func(s *State)) error {
	if s.closed {
		return ErrClosed
	}
	if init != nil {
		init(s)
	}
	return s.Run()
}
