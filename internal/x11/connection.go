package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/wwind/internal/xcb"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	atoms   xcb.Atoms
	painter *xcb.Painter
	proto   *xcb.Protocol
}

// NewConnection establishes a connection to the X11 server on display (empty
// means $DISPLAY) and prepares keyboard mapping, atoms and the shared GC.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	// Required for keycode to keysym lookups on key presses.
	keybind.Initialize(xu)

	atoms, err := xcb.InternAtoms(xu.Conn())
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}

	painter, err := xcb.NewPainter(xu.Conn(), xu.Screen())
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("init drawing: %w", err)
	}

	return &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		atoms:   atoms,
		painter: painter,
		proto:   &xcb.Protocol{X: xu.Conn(), Root: xu.RootWin(), Atoms: atoms},
	}, nil
}

// Painter returns the GC shared by every window of this connection.
func (c *Connection) Painter() *xcb.Painter {
	return c.painter
}

// Flush waits for the server to process all outstanding requests.
func (c *Connection) Flush() error {
	_, err := xproto.GetInputFocus(c.XUtil.Conn()).Reply()
	return err
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.painter.Close()
	c.XUtil.Conn().Close()
}
