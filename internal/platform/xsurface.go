//go:build !windows

package platform

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/wwind/internal/logging"
	"github.com/1broseidon/wwind/internal/xcb"
)

// xSurface draws into one X window through the connection's shared GC. The
// GC is not per window, so SetColor affects every surface of the connection;
// callers set a color before drawing.
type xSurface struct {
	painter *xcb.Painter
	target  xproto.Drawable
}

func (s *xSurface) SetColor(c Color) error {
	return s.painter.SetColor(c.Red, c.Green, c.Blue)
}

func (s *xSurface) DrawLine(x1, y1, x2, y2 int) error {
	return s.painter.Line(s.target, x1, y1, x2, y2)
}

func (s *xSurface) DrawRectangle(r Rect) error {
	return s.painter.FillRect(s.target, r.X, r.Y, r.Width, r.Height)
}

func (s *xSurface) DrawText(x, y int, text string) error {
	return s.painter.Text(s.target, x, y, text)
}

// fromXEvent converts a translated X event. keyName may be nil.
func fromXEvent(ev xcb.Event, keyName func(xcb.Event) string) (Event, bool) {
	out := Event{Window: NativeWindow(ev.Window)}
	switch ev.Kind {
	case xcb.EventClose:
		out.Type = EventCloseRequested
	case xcb.EventExpose:
		out.Type = EventExpose
		out.Region = Rect{X: ev.X, Y: ev.Y, Width: ev.Width, Height: ev.Height}
	case xcb.EventKeyPress:
		out.Type = EventKeyDown
		out.Key = Key{Code: uint32(ev.Keycode)}
		if keyName != nil {
			out.Key.Name = keyName(ev)
		}
	default:
		return Event{}, false
	}
	return out, true
}

// xEventSource is the part of an X connection used by waitX.
// A nil xerr must be an untyped nil, not a nil xgb.Error.
type xEventSource func() (ev xcb.Event, ok bool, xerr error)

// waitX blocks for one X event and forwards its translation to sink. Protocol
// errors are logged rather than returned; they refer to a single request and
// leave the connection usable.
func waitX(kind Kind, next xEventSource, keyName func(xcb.Event) string, sink EventSink) error {
	ev, ok, xerr := next()
	if !ok {
		return ErrDisconnected
	}
	if xerr != nil {
		logging.L().Warn("X protocol error", "backend", string(kind), "err", xerr)
		return nil
	}
	if out, ok := fromXEvent(ev, keyName); ok {
		sink(out)
	}
	return nil
}
