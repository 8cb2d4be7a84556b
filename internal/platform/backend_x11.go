//go:build !windows

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/wwind/internal/x11"
	"github.com/1broseidon/wwind/internal/xcb"
)

func init() {
	Register(KindX11, func(opts Options) (Backend, error) {
		return NewX11Backend(opts.Display)
	})
}

// X11Backend implements Backend on top of the xgbutil helper connection.
type X11Backend struct {
	conn *x11.Connection
}

var (
	_ Backend       = (*X11Backend)(nil)
	_ DisplayLister = (*X11Backend)(nil)
)

// NewX11Backend opens a new X connection on display (empty means $DISPLAY).
func NewX11Backend(display string) (*X11Backend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &X11Backend{conn: conn}, nil
}

func (b *X11Backend) Kind() Kind { return KindX11 }

func (b *X11Backend) CreateWindow(x, y, width, height int, title string) (NativeWindow, error) {
	win, err := b.conn.CreateWindow(x, y, width, height, title)
	if err != nil {
		return 0, err
	}
	return NativeWindow(win), nil
}

func (b *X11Backend) SetTitle(w NativeWindow, title string) error {
	return b.conn.SetTitle(xproto.Window(w), title)
}

func (b *X11Backend) DestroyWindow(w NativeWindow) error {
	return b.conn.DestroyWindow(xproto.Window(w))
}

func (b *X11Backend) Size(w NativeWindow) (int, int, error) {
	return b.conn.WindowSize(xproto.Window(w))
}

func (b *X11Backend) Surface(w NativeWindow) (Surface, error) {
	return &xSurface{painter: b.conn.Painter(), target: xproto.Drawable(w)}, nil
}

func (b *X11Backend) Flush() error {
	return b.conn.Flush()
}

func (b *X11Backend) WaitForEvent(sink EventSink) error {
	next := func() (xcb.Event, bool, error) {
		ev, ok, xerr := b.conn.NextEvent()
		if xerr != nil {
			return ev, ok, xerr
		}
		return ev, ok, nil
	}
	return waitX(KindX11, next, b.conn.KeyName, sink)
}

// Displays lists monitors via RandR.
func (b *X11Backend) Displays() ([]Display, error) {
	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}
	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, Display{
			ID:     m.ID,
			Name:   m.Name,
			Bounds: Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
			Usable: Rect{X: m.UsableX, Y: m.UsableY, Width: m.UsableWidth, Height: m.UsableHeight},
		})
	}
	return displays, nil
}

func (b *X11Backend) Disconnect() error {
	if b != nil && b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	return nil
}
