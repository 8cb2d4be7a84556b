package wwind

import (
	"errors"
	"fmt"
	"testing"

	"github.com/1broseidon/wwind/internal/platform"
)

type drawOp struct {
	window platform.NativeWindow
	op     string
}

type fakeBackend struct {
	next      platform.NativeWindow
	live      map[platform.NativeWindow]string
	destroyed []platform.NativeWindow
	events    []platform.Event
	ops       []drawOp
	flushes   int

	createErr  error
	destroyErr error
	flushErr   error
	drawErr    error

	disconnected bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{next: 0x400000, live: make(map[platform.NativeWindow]string)}
}

func (f *fakeBackend) Kind() platform.Kind { return "fake" }

func (f *fakeBackend) CreateWindow(x, y, width, height int, title string) (platform.NativeWindow, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.next++
	f.live[f.next] = title
	return f.next, nil
}

func (f *fakeBackend) SetTitle(w platform.NativeWindow, title string) error {
	if _, ok := f.live[w]; !ok {
		return fmt.Errorf("no window %d", w)
	}
	f.live[w] = title
	return nil
}

func (f *fakeBackend) DestroyWindow(w platform.NativeWindow) error {
	if _, ok := f.live[w]; !ok {
		panic(fmt.Sprintf("window %#x destroyed twice", w))
	}
	delete(f.live, w)
	f.destroyed = append(f.destroyed, w)
	return f.destroyErr
}

func (f *fakeBackend) Size(w platform.NativeWindow) (int, int, error) {
	return 400, 300, nil
}

func (f *fakeBackend) Surface(w platform.NativeWindow) (platform.Surface, error) {
	return &fakeSurface{b: f, w: w}, nil
}

func (f *fakeBackend) Flush() error {
	f.flushes++
	return f.flushErr
}

func (f *fakeBackend) WaitForEvent(sink platform.EventSink) error {
	if len(f.events) == 0 {
		return platform.ErrDisconnected
	}
	ev := f.events[0]
	f.events = f.events[1:]
	sink(ev)
	return nil
}

func (f *fakeBackend) Disconnect() error {
	f.disconnected = true
	return nil
}

type fakeSurface struct {
	b *fakeBackend
	w platform.NativeWindow
}

func (s *fakeSurface) record(op string) error {
	if s.b.drawErr != nil {
		return s.b.drawErr
	}
	s.b.ops = append(s.b.ops, drawOp{window: s.w, op: op})
	return nil
}

func (s *fakeSurface) SetColor(c platform.Color) error {
	return s.record(fmt.Sprintf("color %06x", c.RGB()))
}

func (s *fakeSurface) DrawLine(x1, y1, x2, y2 int) error {
	return s.record(fmt.Sprintf("line %d,%d-%d,%d", x1, y1, x2, y2))
}

func (s *fakeSurface) DrawRectangle(r platform.Rect) error {
	return s.record(fmt.Sprintf("rect %d,%d %dx%d", r.X, r.Y, r.Width, r.Height))
}

func (s *fakeSurface) DrawText(x, y int, text string) error {
	return s.record(fmt.Sprintf("text %d,%d %s", x, y, text))
}

// releaseCounter is a handler that counts its releases.
type releaseCounter struct {
	calls    int
	released int
}

func (r *releaseCounter) HandleClose(*State, *Window)                 { r.calls++ }
func (r *releaseCounter) HandleRedraw(*State, *Window, platform.Rect) { r.calls++ }
func (r *releaseCounter) HandleKeydown(*State, *Window, platform.Key) { r.calls++ }
func (r *releaseCounter) Release()                                    { r.released++ }

var errFake = errors.New("fake failure")

func newTestState(t *testing.T) (*State, *fakeBackend) {
	t.Helper()
	b := newFakeBackend()
	s, err := New(WithBackend(b))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s, b
}

func addWindow(t *testing.T, s *State, title string) *Window {
	t.Helper()
	w, err := s.AddWindow(100, 100, 300, 400, title)
	if err != nil {
		t.Fatalf("AddWindow(%q): %v", title, err)
	}
	return w
}
