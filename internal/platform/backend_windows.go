//go:build windows

package platform

import (
	"errors"

	"golang.org/x/sys/windows"

	"github.com/1broseidon/wwind/internal/win32"
)

func init() {
	Register(KindWin32, func(Options) (Backend, error) {
		return NewWin32Backend()
	})
}

// Win32Backend implements Backend with user32/gdi32. It must be driven from
// the goroutine that created it.
type Win32Backend struct {
	conn *win32.Conn
}

var _ Backend = (*Win32Backend)(nil)

// NewWin32Backend registers the window class on the calling thread.
func NewWin32Backend() (*Win32Backend, error) {
	conn, err := win32.Open()
	if err != nil {
		return nil, err
	}
	return &Win32Backend{conn: conn}, nil
}

func (b *Win32Backend) Kind() Kind { return KindWin32 }

func (b *Win32Backend) CreateWindow(x, y, width, height int, title string) (NativeWindow, error) {
	hwnd, err := b.conn.CreateWindow(x, y, width, height, title)
	if err != nil {
		return 0, err
	}
	return NativeWindow(hwnd), nil
}

func (b *Win32Backend) SetTitle(w NativeWindow, title string) error {
	return b.conn.SetTitle(windows.HWND(w), title)
}

func (b *Win32Backend) DestroyWindow(w NativeWindow) error {
	return b.conn.DestroyWindow(windows.HWND(w))
}

func (b *Win32Backend) Size(w NativeWindow) (int, int, error) {
	return b.conn.Size(windows.HWND(w))
}

func (b *Win32Backend) Surface(w NativeWindow) (Surface, error) {
	return win32Surface{b.conn.Surface(windows.HWND(w))}, nil
}

func (b *Win32Backend) Flush() error {
	return b.conn.Flush()
}

func (b *Win32Backend) WaitForEvent(sink EventSink) error {
	ev, ok, err := b.conn.Next()
	if errors.Is(err, win32.ErrQuit) {
		return ErrDisconnected
	}
	if err != nil || !ok {
		return err
	}

	out := Event{Window: NativeWindow(ev.Window)}
	switch ev.Kind {
	case win32.EventClose:
		out.Type = EventCloseRequested
	case win32.EventPaint:
		out.Type = EventExpose
		out.Region = Rect{X: ev.Left, Y: ev.Top, Width: ev.Right - ev.Left, Height: ev.Bottom - ev.Top}
	case win32.EventKeyDown:
		out.Type = EventKeyDown
		out.Key = Key{Code: ev.VK, Name: ev.KeyName}
	default:
		return nil
	}
	sink(out)
	return nil
}

func (b *Win32Backend) Disconnect() error {
	b.conn.Close()
	return nil
}

type win32Surface struct {
	s *win32.Surface
}

func (w win32Surface) SetColor(c Color) error {
	w.s.SetColor(c.Red, c.Green, c.Blue)
	return nil
}

func (w win32Surface) DrawLine(x1, y1, x2, y2 int) error { return w.s.Line(x1, y1, x2, y2) }

func (w win32Surface) DrawRectangle(r Rect) error {
	return w.s.FillRect(r.X, r.Y, r.Width, r.Height)
}

func (w win32Surface) DrawText(x, y int, text string) error { return w.s.Text(x, y, text) }
