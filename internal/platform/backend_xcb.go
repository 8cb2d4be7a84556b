//go:build !windows

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/wwind/internal/xcb"
)

func init() {
	Register(KindXCB, func(opts Options) (Backend, error) {
		return NewXCBBackend(opts.Display)
	})
}

// XCBBackend implements Backend directly over xgb. Key names are not
// resolved: without a keysym table only the raw keycode is reported.
type XCBBackend struct {
	conn *xcb.Conn
}

var _ Backend = (*XCBBackend)(nil)

// NewXCBBackend opens a raw X connection on display (empty means $DISPLAY).
func NewXCBBackend(display string) (*XCBBackend, error) {
	conn, err := xcb.Dial(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	return &XCBBackend{conn: conn}, nil
}

func (b *XCBBackend) Kind() Kind { return KindXCB }

func (b *XCBBackend) CreateWindow(x, y, width, height int, title string) (NativeWindow, error) {
	win, err := b.conn.CreateWindow(x, y, width, height, title)
	if err != nil {
		return 0, err
	}
	return NativeWindow(win), nil
}

func (b *XCBBackend) SetTitle(w NativeWindow, title string) error {
	return b.conn.SetTitle(xproto.Window(w), title)
}

func (b *XCBBackend) DestroyWindow(w NativeWindow) error {
	return b.conn.DestroyWindow(xproto.Window(w))
}

func (b *XCBBackend) Size(w NativeWindow) (int, int, error) {
	return b.conn.Size(xproto.Window(w))
}

func (b *XCBBackend) Surface(w NativeWindow) (Surface, error) {
	return &xSurface{painter: b.conn.Painter, target: xproto.Drawable(w)}, nil
}

func (b *XCBBackend) Flush() error {
	return b.conn.Flush()
}

func (b *XCBBackend) WaitForEvent(sink EventSink) error {
	next := func() (xcb.Event, bool, error) {
		ev, ok, xerr := b.conn.NextEvent()
		if xerr != nil {
			return ev, ok, xerr
		}
		return ev, ok, nil
	}
	return waitX(KindXCB, next, nil, sink)
}

func (b *XCBBackend) Disconnect() error {
	if b != nil && b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	return nil
}
