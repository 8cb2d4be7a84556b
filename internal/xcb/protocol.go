package xcb

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/wwind/internal/logging"
)

// EventKind classifies a translated X event.
type EventKind int

const (
	EventNone EventKind = iota
	EventClose
	EventExpose
	EventKeyPress
)

// Event is an X event reduced to what the window layer consumes.
type Event struct {
	Kind    EventKind
	Window  xproto.Window
	X       int
	Y       int
	Width   int
	Height  int
	Keycode xproto.Keycode
	State   uint16
}

// Protocol translates raw X events and answers window-manager pings.
type Protocol struct {
	X     *xgb.Conn
	Root  xproto.Window
	Atoms Atoms
}

// Translate reduces ev to an Event. Pings are answered here and yield
// EventNone, as does anything the window layer does not consume.
func (p *Protocol) Translate(ev xgb.Event) Event {
	switch e := ev.(type) {
	case xproto.ExposeEvent:
		return Event{
			Kind:   EventExpose,
			Window: e.Window,
			X:      int(e.X),
			Y:      int(e.Y),
			Width:  int(e.Width),
			Height: int(e.Height),
		}
	case xproto.KeyPressEvent:
		return Event{
			Kind:    EventKeyPress,
			Window:  e.Event,
			Keycode: e.Detail,
			State:   e.State,
		}
	case xproto.ClientMessageEvent:
		return p.clientMessage(e)
	default:
		logging.L().Debug("ignoring X event", "event", ev.String())
		return Event{}
	}
}

func (p *Protocol) clientMessage(e xproto.ClientMessageEvent) Event {
	if e.Type != p.Atoms.WMProtocols || e.Format != 32 || len(e.Data.Data32) == 0 {
		logging.L().Debug("ignoring client message", "type", e.Type, "window", e.Window)
		return Event{}
	}

	switch xproto.Atom(e.Data.Data32[0]) {
	case 0:
		return Event{}
	case p.Atoms.WMDeleteWindow:
		return Event{Kind: EventClose, Window: e.Window}
	case p.Atoms.NetWMPing:
		p.pong(e)
		return Event{}
	default:
		logging.L().Debug("unknown WM_PROTOCOLS message", "protocol", e.Data.Data32[0])
		return Event{}
	}
}

// pong bounces a _NET_WM_PING back to the root window as EWMH requires.
func (p *Protocol) pong(e xproto.ClientMessageEvent) {
	reply := e
	reply.Window = p.Root
	err := xproto.SendEventChecked(
		p.X,
		false,
		p.Root,
		xproto.EventMaskSubstructureNotify|xproto.EventMaskSubstructureRedirect,
		string(reply.Bytes()),
	).Check()
	if err != nil {
		logging.L().Warn("failed to answer _NET_WM_PING", "err", err)
		return
	}
	logging.L().Debug("answered _NET_WM_PING", "window", e.Window)
}
