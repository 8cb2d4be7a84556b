package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/wwind/internal/xcb"
)

// KeyName resolves a key press to its keysym string ("a", "Escape", ...).
func (c *Connection) KeyName(ev xcb.Event) string {
	return keybind.LookupString(c.XUtil, ev.State, ev.Keycode)
}

// NextEvent blocks for one X event and translates it. A closed connection
// yields ok == false; protocol errors come back as xerr.
func (c *Connection) NextEvent() (ev xcb.Event, ok bool, xerr xgb.Error) {
	raw, xerr := c.XUtil.Conn().WaitForEvent()
	if raw == nil && xerr == nil {
		return xcb.Event{}, false, nil
	}
	if xerr != nil {
		return xcb.Event{}, true, xerr
	}
	return c.proto.Translate(raw), true, nil
}
