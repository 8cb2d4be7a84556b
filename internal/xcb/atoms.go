package xcb

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Atoms holds the interned atoms needed for window management.
type Atoms struct {
	WMProtocols    xproto.Atom
	WMDeleteWindow xproto.Atom
	NetWMPing      xproto.Atom
	NetWMName      xproto.Atom
	UTF8String     xproto.Atom
}

var atomNames = []string{
	"WM_PROTOCOLS",
	"WM_DELETE_WINDOW",
	"_NET_WM_PING",
	"_NET_WM_NAME",
	"UTF8_STRING",
}

// InternAtoms interns every atom in one round trip batch.
func InternAtoms(c *xgb.Conn) (Atoms, error) {
	cookies := make([]xproto.InternAtomCookie, len(atomNames))
	for i, name := range atomNames {
		cookies[i] = xproto.InternAtom(c, false, uint16(len(name)), name)
	}

	ids := make([]xproto.Atom, len(atomNames))
	for i, cookie := range cookies {
		reply, err := cookie.Reply()
		if err != nil {
			return Atoms{}, fmt.Errorf("intern atom %s: %w", atomNames[i], err)
		}
		ids[i] = reply.Atom
	}

	return Atoms{
		WMProtocols:    ids[0],
		WMDeleteWindow: ids[1],
		NetWMPing:      ids[2],
		NetWMName:      ids[3],
		UTF8String:     ids[4],
	}, nil
}

// encodeAtoms packs atoms as 32-bit property data.
func encodeAtoms(atoms ...xproto.Atom) []byte {
	buf := make([]byte, 4*len(atoms))
	for i, a := range atoms {
		xgb.Put32(buf[i*4:], uint32(a))
	}
	return buf
}

// SetProtocols advertises WM_DELETE_WINDOW and _NET_WM_PING on a window so the
// window manager sends close requests and pings instead of killing the client.
func SetProtocols(c *xgb.Conn, win xproto.Window, atoms Atoms) error {
	data := encodeAtoms(atoms.WMDeleteWindow, atoms.NetWMPing)
	return xproto.ChangePropertyChecked(
		c,
		xproto.PropModeReplace,
		win,
		atoms.WMProtocols,
		xproto.AtomAtom,
		32,
		2,
		data,
	).Check()
}

// SetTitle writes both _NET_WM_NAME (UTF-8) and the legacy WM_NAME.
func SetTitle(c *xgb.Conn, win xproto.Window, atoms Atoms, title string) error {
	err := xproto.ChangePropertyChecked(
		c,
		xproto.PropModeReplace,
		win,
		atoms.NetWMName,
		atoms.UTF8String,
		8,
		uint32(len(title)),
		[]byte(title),
	).Check()
	if err != nil {
		return err
	}
	xproto.ChangeProperty(
		c,
		xproto.PropModeReplace,
		win,
		xproto.AtomWmName,
		xproto.AtomString,
		8,
		uint32(len(title)),
		[]byte(title),
	)
	return nil
}
