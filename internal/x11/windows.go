package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// CreateWindow creates and maps a top-level window that reports exposures,
// key presses and WM close requests.
func (c *Connection) CreateWindow(x, y, width, height int, title string) (xproto.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("allocate window id: %w", err)
	}

	// Value list order follows the bit positions of the mask (low to high).
	err = win.CreateChecked(
		c.Root,
		x, y, width, height,
		xproto.CwBackPixel|xproto.CwBackingStore|xproto.CwEventMask,
		c.XUtil.Screen().WhitePixel,
		xproto.BackingStoreWhenMapped,
		xproto.EventMaskExposure|xproto.EventMaskKeyPress,
	)
	if err != nil {
		return 0, fmt.Errorf("create window: %w", err)
	}

	if err := icccm.WmProtocolsSet(c.XUtil, win.Id, []string{"WM_DELETE_WINDOW", "_NET_WM_PING"}); err != nil {
		win.Destroy()
		return 0, fmt.Errorf("set WM_PROTOCOLS: %w", err)
	}
	if err := c.SetTitle(win.Id, title); err != nil {
		win.Destroy()
		return 0, err
	}

	win.Map()
	return win.Id, nil
}

// SetTitle sets both the EWMH and ICCCM names so every window manager shows it.
func (c *Connection) SetTitle(windowID xproto.Window, title string) error {
	if err := ewmh.WmNameSet(c.XUtil, windowID, title); err != nil {
		return fmt.Errorf("set _NET_WM_NAME: %w", err)
	}
	if err := icccm.WmNameSet(c.XUtil, windowID, title); err != nil {
		return fmt.Errorf("set WM_NAME: %w", err)
	}
	return nil
}

// DestroyWindow destroys a window created by this connection.
func (c *Connection) DestroyWindow(windowID xproto.Window) error {
	return xproto.DestroyWindowChecked(c.XUtil.Conn(), windowID).Check()
}

// WindowSize returns the inner size of a window.
func (c *Connection) WindowSize(windowID xproto.Window) (width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(geom.Width), int(geom.Height), nil
}
