// Package xcb is the low-level X connection backend: every request goes
// straight through xgb/xproto without helper libraries.
package xcb

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Conn is a raw X connection with the resources needed to manage windows.
type Conn struct {
	X       *xgb.Conn
	Screen  *xproto.ScreenInfo
	Root    xproto.Window
	Atoms   Atoms
	Painter *Painter

	proto *Protocol
}

// Dial connects to display (empty means $DISPLAY) and sets up atoms and the
// shared graphics context.
func Dial(display string) (*Conn, error) {
	x, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	screen := xproto.Setup(x).DefaultScreen(x)
	atoms, err := InternAtoms(x)
	if err != nil {
		x.Close()
		return nil, err
	}

	painter, err := NewPainter(x, screen)
	if err != nil {
		x.Close()
		return nil, err
	}

	return &Conn{
		X:       x,
		Screen:  screen,
		Root:    screen.Root,
		Atoms:   atoms,
		Painter: painter,
		proto:   &Protocol{X: x, Root: screen.Root, Atoms: atoms},
	}, nil
}

// CreateWindow creates, titles, and maps a top-level window.
func (c *Conn) CreateWindow(x, y, width, height int, title string) (xproto.Window, error) {
	wid, err := xproto.NewWindowId(c.X)
	if err != nil {
		return 0, err
	}

	// Value list order follows the bit positions of the mask (low to high).
	err = xproto.CreateWindowChecked(
		c.X,
		c.Screen.RootDepth,
		wid,
		c.Root,
		clamp16(x), clamp16(y),
		clampU16(width), clampU16(height),
		1,
		xproto.WindowClassInputOutput,
		c.Screen.RootVisual,
		xproto.CwBackPixel|xproto.CwBackingStore|xproto.CwEventMask,
		[]uint32{
			c.Screen.WhitePixel,
			xproto.BackingStoreWhenMapped,
			xproto.EventMaskExposure | xproto.EventMaskKeyPress,
		},
	).Check()
	if err != nil {
		return 0, fmt.Errorf("create window: %w", err)
	}

	if err := SetProtocols(c.X, wid, c.Atoms); err != nil {
		xproto.DestroyWindow(c.X, wid)
		return 0, fmt.Errorf("set WM_PROTOCOLS: %w", err)
	}
	if err := SetTitle(c.X, wid, c.Atoms, title); err != nil {
		xproto.DestroyWindow(c.X, wid)
		return 0, fmt.Errorf("set title: %w", err)
	}
	if err := xproto.MapWindowChecked(c.X, wid).Check(); err != nil {
		xproto.DestroyWindow(c.X, wid)
		return 0, fmt.Errorf("map window: %w", err)
	}
	return wid, nil
}

// SetTitle replaces the window title.
func (c *Conn) SetTitle(win xproto.Window, title string) error {
	return SetTitle(c.X, win, c.Atoms, title)
}

// DestroyWindow destroys win.
func (c *Conn) DestroyWindow(win xproto.Window) error {
	return xproto.DestroyWindowChecked(c.X, win).Check()
}

// Size returns the window's inner size.
func (c *Conn) Size(win xproto.Window) (int, int, error) {
	geom, err := xproto.GetGeometry(c.X, xproto.Drawable(win)).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(geom.Width), int(geom.Height), nil
}

// Flush waits for the server to process every request sent so far. xgb
// writes requests eagerly, so a round trip is the only meaningful flush.
func (c *Conn) Flush() error {
	_, err := xproto.GetInputFocus(c.X).Reply()
	return err
}

// NextEvent blocks for one X event and translates it. Protocol errors are
// reported as a non-nil xgb.Error with an EventNone event; a closed
// connection yields ok == false.
func (c *Conn) NextEvent() (ev Event, ok bool, xerr xgb.Error) {
	raw, xerr := c.X.WaitForEvent()
	if raw == nil && xerr == nil {
		return Event{}, false, nil
	}
	if xerr != nil {
		return Event{}, true, xerr
	}
	return c.proto.Translate(raw), true, nil
}

// Close frees the GC and closes the connection.
func (c *Conn) Close() {
	if c == nil || c.X == nil {
		return
	}
	c.Painter.Close()
	c.X.Close()
}
