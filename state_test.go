package wwind

import (
	"errors"
	"testing"

	"github.com/1broseidon/wwind/internal/config"
	"github.com/1broseidon/wwind/internal/platform"
)

func TestNewIsSingleton(t *testing.T) {
	b := newFakeBackend()
	s, err := New(WithBackend(b))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ActiveKind() != "fake" {
		t.Fatalf("ActiveKind = %q", ActiveKind())
	}

	if _, err := New(WithBackend(newFakeBackend())); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("second New: expected ErrAlreadyActive, got %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !b.disconnected {
		t.Fatal("backend not disconnected")
	}
	if ActiveKind() != "" {
		t.Fatalf("ActiveKind after Close = %q", ActiveKind())
	}

	s2, err := New(WithBackend(newFakeBackend()))
	if err != nil {
		t.Fatalf("New after Close: %v", err)
	}
	if err := s2.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNewNoBackendReleasesSingleton(t *testing.T) {
	_, err := New(WithBackends("no-such-backend"))
	if !errors.Is(err, ErrNoBackend) {
		t.Fatalf("expected ErrNoBackend, got %v", err)
	}
	if !errors.Is(err, platform.ErrUnknownBackend) {
		t.Fatalf("expected backend error to be wrapped, got %v", err)
	}

	s, _ := newTestState(t)
	if s.Kind() != "fake" {
		t.Fatalf("Kind = %q", s.Kind())
	}
}

func TestNewHeadlessFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backends = []platform.Kind{platform.KindHeadless}

	s, err := New(WithConfig(cfg))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()
	if s.Kind() != platform.KindHeadless || ActiveKind() != platform.KindHeadless {
		t.Fatalf("Kind = %q, ActiveKind = %q", s.Kind(), ActiveKind())
	}
}

func TestCloseDestroysRemainingWindowsAndReleases(t *testing.T) {
	b := newFakeBackend()
	s, err := New(WithBackend(b))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a, _ := s.AddWindow(0, 0, 10, 10, "a")
	c, _ := s.AddWindow(0, 0, 10, 10, "c")
	rc := &releaseCounter{}
	a.OnRedraw(rc)
	c.ScheduleDestruction()

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(b.live) != 0 || len(b.destroyed) != 2 {
		t.Fatalf("live=%v destroyed=%v", b.live, b.destroyed)
	}
	if rc.released != 1 {
		t.Fatalf("handler released %d times", rc.released)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := s.AddWindow(0, 0, 10, 10, "late"); !errors.Is(err, ErrClosed) {
		t.Fatalf("AddWindow after Close: %v", err)
	}
	if err := s.Step(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Step after Close: %v", err)
	}
}

func TestCloseRefusedFromHandler(t *testing.T) {
	s, _ := newTestState(t)
	w := addWindow(t, s, "a")
	var got error
	w.OnCloseFunc(func(s *State, _ *Window) { got = s.Close() })

	s.HandleEvent(platform.Event{Type: platform.EventCloseRequested, Window: w.Handle().Native()})
	if !errors.Is(got, ErrInCallback) {
		t.Fatalf("expected ErrInCallback, got %v", got)
	}
}

func TestUserDataReleasedOnClose(t *testing.T) {
	first := &releaseCounter{}
	s, err := New(WithBackend(newFakeBackend()), WithUserData(first))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.UserData() != any(first) {
		t.Fatalf("UserData = %v, want initial value", s.UserData())
	}

	second := &releaseCounter{}
	s.SetUserData(second)
	w, _ := s.AddWindow(0, 0, 10, 10, "a")
	var seen any
	w.OnCloseFunc(func(s *State, _ *Window) { seen = s.UserData() })
	s.HandleEvent(platform.Event{Type: platform.EventCloseRequested, Window: w.Handle().Native()})
	if seen != any(second) {
		t.Fatalf("handler saw %v", seen)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if first.released != 0 || second.released != 1 {
		t.Fatalf("released first=%d second=%d", first.released, second.released)
	}
	if s.UserData() != nil {
		t.Fatalf("UserData after Close = %v", s.UserData())
	}
}

func TestDisplaysUnsupported(t *testing.T) {
	s, _ := newTestState(t)
	if _, err := s.Displays(); !errors.Is(err, platform.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestHandleString(t *testing.T) {
	h := Handle{kind: platform.KindX11, native: 0x1c00003}
	if h.String() != "x11:0x1c00003" {
		t.Fatalf("String = %q", h.String())
	}
	if !(Handle{}).IsZero() || h.IsZero() {
		t.Fatal("IsZero mismatch")
	}
	// Same native id from another backend is a different window.
	if h == (Handle{kind: platform.KindXCB, native: 0x1c00003}) {
		t.Fatal("handles from different backends compare equal")
	}
}
