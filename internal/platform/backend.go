package platform

import "errors"

// Kind names a concrete window-system integration.
type Kind string

const (
	KindX11      Kind = "x11"      // X protocol through xgbutil helpers.
	KindXCB      Kind = "xcb"      // Raw X connection (xgb/xproto only).
	KindWin32    Kind = "win32"    // Native Win32 user32/gdi32.
	KindHeadless Kind = "headless" // Off-screen raster canvases.
)

// NativeWindow is a backend-native window identifier (an X window XID or a
// Win32 HWND).
type NativeWindow uint64

// Rect describes a rectangular region in window or screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Color is an 8-bit-per-channel RGB color.
type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// RGB returns the color packed as 0xRRGGBB.
func (c Color) RGB() uint32 {
	return uint32(c.Red)<<16 | uint32(c.Green)<<8 | uint32(c.Blue)
}

// EventType enumerates the abstract events a backend reports.
type EventType int

const (
	EventCloseRequested EventType = iota + 1
	EventExpose
	EventKeyDown
)

func (t EventType) String() string {
	switch t {
	case EventCloseRequested:
		return "close-requested"
	case EventExpose:
		return "expose"
	case EventKeyDown:
		return "keydown"
	default:
		return "unknown"
	}
}

// Key identifies a pressed key. Code is the backend-native keycode (X keycode
// or Win32 virtual-key code); Name is a best-effort symbolic name.
type Key struct {
	Code uint32
	Name string
}

// Event is one translated native event.
type Event struct {
	Type   EventType
	Window NativeWindow
	Region Rect // EventExpose only.
	Key    Key  // EventKeyDown only.
}

// EventSink receives translated events from Backend.WaitForEvent.
type EventSink func(Event)

var (
	// ErrDisconnected is returned by WaitForEvent once the native connection is gone.
	ErrDisconnected = errors.New("window system connection closed")
	// ErrUnknownBackend is returned when no factory is registered for a kind.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrUnsupported is returned by backends that cannot serve a request.
	ErrUnsupported = errors.New("operation not supported by backend")
)

// Surface is a drawing target bound to one window.
type Surface interface {
	SetColor(c Color) error
	DrawLine(x1, y1, x2, y2 int) error
	DrawRectangle(r Rect) error
	DrawText(x, y int, text string) error
}

// Backend abstracts window-system operations across platforms.
//
// A backend is driven from a single goroutine. DestroyWindow must not be
// called twice for the same window.
type Backend interface {
	Kind() Kind
	CreateWindow(x, y, width, height int, title string) (NativeWindow, error)
	SetTitle(w NativeWindow, title string) error
	DestroyWindow(w NativeWindow) error
	Size(w NativeWindow) (width, height int, err error)
	Surface(w NativeWindow) (Surface, error)
	Flush() error
	// WaitForEvent blocks until one native event is available and calls sink
	// at most once with its translation. Events the backend handles itself
	// (pings, unknown messages) produce no call.
	WaitForEvent(sink EventSink) error
	Disconnect() error
}

// DisplayLister is implemented by backends that can enumerate monitors.
type DisplayLister interface {
	Displays() ([]Display, error)
}

func containsPoint(r Rect, x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// DisplayAt returns the display whose bounds contain (x, y).
func DisplayAt(displays []Display, x, y int) (Display, bool) {
	for _, d := range displays {
		if containsPoint(d.Bounds, x, y) {
			return d, true
		}
	}
	return Display{}, false
}
