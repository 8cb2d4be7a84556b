package wwind

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/1broseidon/wwind/internal/config"
	"github.com/1broseidon/wwind/internal/platform"
)

func closeEvent(w *Window) platform.Event {
	return platform.Event{Type: platform.EventCloseRequested, Window: w.Handle().Native()}
}

func TestCloseWithoutHandlerSchedulesDestruction(t *testing.T) {
	s, b := newTestState(t)
	w := addWindow(t, s, "a")

	s.HandleEvent(closeEvent(w))
	if !s.Pending(w.Handle()) {
		t.Fatal("window not scheduled")
	}
	if _, ok := s.Window(w.Handle()); !ok {
		t.Fatal("window destroyed during dispatch")
	}
	if b.flushes != 1 {
		t.Fatalf("flushes = %d, want 1", b.flushes)
	}

	s.DrainDestructionQueue()
	if _, ok := s.Window(w.Handle()); ok {
		t.Fatal("window still registered after drain")
	}
}

func TestExposeWithoutHandlerIsHarmless(t *testing.T) {
	s, b := newTestState(t)
	w, err := s.AddWindow(100, 100, 400, 300, "t")
	if err != nil {
		t.Fatalf("AddWindow: %v", err)
	}

	s.HandleEvent(platform.Event{
		Type:   platform.EventExpose,
		Window: w.Handle().Native(),
		Region: platform.Rect{Width: 400, Height: 300},
	})
	if _, ok := s.Window(w.Handle()); !ok || s.Pending(w.Handle()) {
		t.Fatal("unhandled expose changed the registry")
	}
	if len(b.ops) != 0 {
		t.Fatalf("unhandled expose drew: %v", b.ops)
	}

	s.HandleEvent(platform.Event{Type: platform.EventKeyDown, Window: w.Handle().Native()})
	if !s.WindowsExist() {
		t.Fatal("unhandled keydown changed the registry")
	}
}

func TestHandlersReceivePayload(t *testing.T) {
	s, _ := newTestState(t)
	w := addWindow(t, s, "a")

	var region platform.Rect
	var key platform.Key
	var views []*Window
	w.OnRedrawFunc(func(_ *State, v *Window, r platform.Rect) {
		region = r
		views = append(views, v)
	})
	w.OnKeydownFunc(func(_ *State, v *Window, k platform.Key) {
		key = k
		views = append(views, v)
	})

	s.HandleEvent(platform.Event{Type: platform.EventExpose, Window: w.Handle().Native(), Region: platform.Rect{X: 1, Y: 2, Width: 3, Height: 4}})
	s.HandleEvent(platform.Event{Type: platform.EventKeyDown, Window: w.Handle().Native(), Key: platform.Key{Code: 9, Name: "Escape"}})

	if region != (platform.Rect{X: 1, Y: 2, Width: 3, Height: 4}) {
		t.Fatalf("region = %+v", region)
	}
	if key != (platform.Key{Code: 9, Name: "Escape"}) {
		t.Fatalf("key = %+v", key)
	}
	for _, v := range views {
		if v.Handle() != w.Handle() {
			t.Fatalf("handler got view of %s", v.Handle())
		}
	}
}

func TestEventForUnknownWindowIgnored(t *testing.T) {
	s, _ := newTestState(t)
	w := addWindow(t, s, "a")
	called := false
	w.OnCloseFunc(func(*State, *Window) { called = true })

	s.HandleEvent(platform.Event{Type: platform.EventCloseRequested, Window: 0xbad})
	if called || s.queue.len() != 0 {
		t.Fatal("event for unknown window was dispatched")
	}
}

func TestCloseHandlerSchedulesAndCreates(t *testing.T) {
	s, _ := newTestState(t)
	a := addWindow(t, s, "A")
	var b *Window
	a.OnCloseFunc(func(s *State, w *Window) {
		w.ScheduleDestruction()
		var err error
		b, err = s.AddWindow(0, 0, 100, 100, "B")
		if err != nil {
			t.Errorf("AddWindow in handler: %v", err)
		}
	})

	s.HandleEvent(closeEvent(a))
	if b == nil {
		t.Fatal("handler did not run")
	}
	if !s.Pending(a.Handle()) || s.Pending(b.Handle()) {
		t.Fatal("queue should hold exactly A")
	}
	if _, ok := s.Window(a.Handle()); !ok {
		t.Fatal("A must remain registered until the drain")
	}
	if _, ok := s.Window(b.Handle()); !ok {
		t.Fatal("B not registered")
	}

	s.DrainDestructionQueue()
	got := s.Windows()
	if len(got) != 1 || got[0] != b.Handle() {
		t.Fatalf("Windows = %v, want only B", got)
	}
}

func TestHandlerReplacingItselfTakesEffectNextTime(t *testing.T) {
	s, _ := newTestState(t)
	w := addWindow(t, s, "a")

	var order []string
	replacement := &releaseCounter{}
	first := &selfReplacing{order: &order, next: replacement}
	w.OnKeydown(first)

	ev := platform.Event{Type: platform.EventKeyDown, Window: w.Handle().Native()}
	s.HandleEvent(ev)
	if len(order) != 1 || replacement.calls != 0 {
		t.Fatalf("replacement ran during the first event: order=%v calls=%d", order, replacement.calls)
	}
	if first.released != 1 {
		t.Fatalf("replaced running handler released %d times", first.released)
	}

	s.HandleEvent(ev)
	if len(order) != 1 || replacement.calls != 1 {
		t.Fatalf("second event: order=%v replacement calls=%d", order, replacement.calls)
	}
}

type selfReplacing struct {
	order    *[]string
	next     KeydownHandler
	released int
}

func (h *selfReplacing) HandleKeydown(s *State, w *Window, _ platform.Key) {
	*h.order = append(*h.order, "first")
	w.OnKeydown(h.next)
}

func (h *selfReplacing) Release() { h.released++ }

func TestHandlerRegisteringItselfIsNotReleased(t *testing.T) {
	s, _ := newTestState(t)
	w := addWindow(t, s, "a")
	h := &selfRegistering{}
	w.OnKeydown(h)

	ev := platform.Event{Type: platform.EventKeyDown, Window: w.Handle().Native()}
	s.HandleEvent(ev)
	s.HandleEvent(ev)
	if h.calls != 2 {
		t.Fatalf("handler ran %d times, want 2", h.calls)
	}
	if h.released != 0 {
		t.Fatalf("registered handler released %d times", h.released)
	}
	if got := s.entries[w.Handle()].keydown; got != KeydownHandler(h) {
		t.Fatalf("slot holds %v, want the handler", got)
	}

	w.ScheduleDestruction()
	s.DrainDestructionQueue()
	if h.released != 1 {
		t.Fatalf("released %d times after destroy, want 1", h.released)
	}
}

type selfRegistering struct {
	calls    int
	released int
}

func (h *selfRegistering) HandleKeydown(s *State, w *Window, _ platform.Key) {
	h.calls++
	w.OnKeydown(h)
}

func (h *selfRegistering) Release() { h.released++ }

func TestHandlerRestoredAfterCall(t *testing.T) {
	s, _ := newTestState(t)
	w := addWindow(t, s, "a")
	rc := &releaseCounter{}
	w.OnRedraw(rc)

	for i := 0; i < 3; i++ {
		s.HandleEvent(platform.Event{Type: platform.EventExpose, Window: w.Handle().Native()})
	}
	if rc.calls != 3 || rc.released != 0 {
		t.Fatalf("calls=%d released=%d", rc.calls, rc.released)
	}
}

func TestNestedDispatchUsesDefaultsAndDefersDrain(t *testing.T) {
	s, b := newTestState(t)
	w := addWindow(t, s, "a")
	other := addWindow(t, s, "b")

	depth := 0
	w.OnCloseFunc(func(s *State, v *Window) {
		depth++
		if depth > 1 {
			t.Fatal("close handler invoked recursively")
		}
		// Same window, same slot: the slot is empty while running.
		s.HandleEvent(closeEvent(v))
		s.HandleEvent(closeEvent(other))
		s.DrainDestructionQueue()
		if err := s.Step(); !errors.Is(err, ErrInCallback) {
			t.Errorf("Step inside handler: %v", err)
		}
	})

	s.HandleEvent(closeEvent(w))
	if !s.Pending(w.Handle()) || !s.Pending(other.Handle()) {
		t.Fatal("nested close requests should schedule both windows")
	}
	if len(b.destroyed) != 0 {
		t.Fatal("drain ran inside a handler")
	}
	if s.entries[w.Handle()].close == nil {
		t.Fatal("close handler not restored")
	}

	s.DrainDestructionQueue()
	if s.WindowsExist() {
		t.Fatal("windows remain")
	}
}

func TestFlushErrorIsNotFatal(t *testing.T) {
	s, b := newTestState(t)
	w := addWindow(t, s, "a")
	b.flushErr = errFake

	s.HandleEvent(closeEvent(w))
	if !s.Pending(w.Handle()) {
		t.Fatal("dispatch aborted by flush error")
	}
}

func TestRunStopsWhenLastWindowCloses(t *testing.T) {
	s, b := newTestState(t)
	a := addWindow(t, s, "a")
	c := addWindow(t, s, "c")
	redraws := 0
	a.OnRedrawFunc(func(*State, *Window, platform.Rect) { redraws++ })
	b.events = []platform.Event{
		{Type: platform.EventExpose, Window: a.Handle().Native()},
		closeEvent(a),
		{Type: platform.EventKeyDown, Window: a.Handle().Native()},
		closeEvent(c),
		{Type: platform.EventExpose, Window: c.Handle().Native()},
	}

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.WindowsExist() {
		t.Fatal("Run returned with windows alive")
	}
	if redraws != 1 {
		t.Fatalf("redraws = %d", redraws)
	}
	if len(b.events) != 1 {
		t.Fatalf("Run should stop with the trailing event unread, %d left", len(b.events))
	}
}

func TestRunStopsOnRequestExit(t *testing.T) {
	s, b := newTestState(t)
	w := addWindow(t, s, "a")
	w.OnKeydownFunc(func(s *State, _ *Window, k platform.Key) {
		if k.Name == "q" {
			s.RequestExit()
		}
	})
	b.events = []platform.Event{
		{Type: platform.EventKeyDown, Window: w.Handle().Native(), Key: platform.Key{Name: "a"}},
		{Type: platform.EventKeyDown, Window: w.Handle().Native(), Key: platform.Key{Name: "q"}},
		{Type: platform.EventKeyDown, Window: w.Handle().Native(), Key: platform.Key{Name: "z"}},
	}

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !s.ExitRequested() || !s.WindowsExist() || len(b.events) != 1 {
		t.Fatalf("exit=%v windows=%v remaining=%d", s.ExitRequested(), s.WindowsExist(), len(b.events))
	}
}

func TestRunReturnsDisconnect(t *testing.T) {
	s, _ := newTestState(t)
	addWindow(t, s, "a")
	if err := s.Run(); !errors.Is(err, platform.ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected, got %v", err)
	}
}

func TestRunWithCallsInit(t *testing.T) {
	s, b := newTestState(t)
	err := s.RunWith(func(s *State) {
		w := addWindow(t, s, "init")
		b.events = []platform.Event{closeEvent(w)}
	})
	if err != nil {
		t.Fatalf("RunWith: %v", err)
	}
	if len(b.destroyed) != 1 {
		t.Fatalf("destroyed = %v", b.destroyed)
	}
}

func TestHeadlessEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Backends = []platform.Kind{platform.KindHeadless}
	cfg.Headless.OutputDir = dir
	cfg.Headless.Events = []config.EventConfig{
		{Type: "keydown", Window: 1, Key: "space"},
	}

	s, err := New(WithConfig(cfg))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	var keys []string
	err = s.RunWith(func(s *State) {
		w, err := s.AddWindow(0, 0, 60, 80, "e2e")
		if err != nil {
			t.Fatalf("AddWindow: %v", err)
		}
		w.OnRedrawFunc(func(_ *State, w *Window, _ platform.Rect) {
			dc, err := w.DrawingContext()
			if err != nil {
				t.Errorf("DrawingContext: %v", err)
				return
			}
			dc.SetColor(platform.Color{Green: 200})
			dc.DrawRectangle(platform.Rect{X: 10, Y: 10, Width: 20, Height: 20})
			dc.DrawLine(0, 0, 79, 59)
			dc.DrawText(5, 50, "hi")
		})
		w.OnKeydownFunc(func(_ *State, _ *Window, k platform.Key) { keys = append(keys, k.Name) })
	})
	if err != nil {
		t.Fatalf("RunWith: %v", err)
	}
	if len(keys) != 1 || keys[0] != "space" {
		t.Fatalf("keys = %v", keys)
	}
	if s.WindowsExist() {
		t.Fatal("headless run left windows behind")
	}
	if _, err := os.Stat(filepath.Join(dir, "window-1.png")); err != nil {
		t.Fatalf("expected rendered png: %v", err)
	}
}
