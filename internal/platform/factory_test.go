package platform

import (
	"errors"
	"strings"
	"testing"
)

type stubBackend struct {
	Backend
	kind Kind
}

func (s *stubBackend) Kind() Kind { return s.kind }

func TestConnectFallsBackInOrder(t *testing.T) {
	var tried []Kind
	Register("test-broken", func(Options) (Backend, error) {
		tried = append(tried, "test-broken")
		return nil, errors.New("no server")
	})
	Register("test-working", func(opts Options) (Backend, error) {
		tried = append(tried, "test-working")
		if opts.Display != ":7" {
			t.Fatalf("display not forwarded: %q", opts.Display)
		}
		return &stubBackend{kind: "test-working"}, nil
	})
	Register("test-unused", func(Options) (Backend, error) {
		t.Fatal("backend after the first success must not be tried")
		return nil, nil
	})

	b, err := Connect([]Kind{"test-broken", "test-working", "test-unused"}, Options{Display: ":7"})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if b.Kind() != "test-working" {
		t.Fatalf("got backend %q", b.Kind())
	}
	if len(tried) != 2 || tried[0] != "test-broken" || tried[1] != "test-working" {
		t.Fatalf("unexpected attempt order: %v", tried)
	}
}

func TestConnectJoinsEveryFailure(t *testing.T) {
	errA := errors.New("display refused")
	Register("test-fail-a", func(Options) (Backend, error) { return nil, errA })

	_, err := Connect([]Kind{"test-fail-a", "test-missing"}, Options{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, errA) {
		t.Fatalf("expected factory error in %v", err)
	}
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend in %v", err)
	}
	if !strings.Contains(err.Error(), "test-fail-a") || !strings.Contains(err.Error(), "test-missing") {
		t.Fatalf("error should name both backends: %v", err)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"x11", KindX11, false},
		{"xcb", KindXCB, false},
		{"win32", KindWin32, false},
		{"headless", KindHeadless, false},
		{"wayland", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultOrderIsRegistered(t *testing.T) {
	order := DefaultOrder()
	if len(order) == 0 {
		t.Fatal("empty default order")
	}
	for _, k := range order {
		if k == KindHeadless {
			t.Fatal("headless must be opt-in")
		}
		if _, ok := lookup(k); !ok {
			t.Fatalf("default backend %q has no factory", k)
		}
	}
}

func TestDisplayAt(t *testing.T) {
	displays := []Display{
		{ID: 0, Bounds: Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
		{ID: 1, Bounds: Rect{X: 1920, Y: 0, Width: 1280, Height: 1024}},
	}
	if d, ok := DisplayAt(displays, 1920, 10); !ok || d.ID != 1 {
		t.Fatalf("expected display 1, got %+v ok=%v", d, ok)
	}
	if d, ok := DisplayAt(displays, 1919, 1079); !ok || d.ID != 0 {
		t.Fatalf("expected display 0, got %+v ok=%v", d, ok)
	}
	if _, ok := DisplayAt(displays, 100, 1080); ok {
		t.Fatal("point below every display must not match")
	}
}

func TestColorRGB(t *testing.T) {
	if got := (Color{Red: 0x12, Green: 0x34, Blue: 0x56}).RGB(); got != 0x123456 {
		t.Fatalf("RGB() = %#x", got)
	}
}
