//go:build windows

// Package win32 is the native Windows backend: one window class, a blocking
// message pump, and GDI drawing.
package win32

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/1broseidon/wwind/internal/logging"
)

const className = "wwindWindow"

// ErrQuit is returned by Next after WM_QUIT.
var ErrQuit = errors.New("win32: message loop quit")

// EventKind classifies a window message.
type EventKind int

const (
	EventClose EventKind = iota + 1
	EventPaint
	EventKeyDown
)

// Event is a window message reduced to what the window layer consumes.
type Event struct {
	Kind    EventKind
	Window  windows.HWND
	Left    int
	Top     int
	Right   int
	Bottom  int
	VK      uint32
	KeyName string
}

// Conn is the Win32 session. Only one can be open because the window
// procedure is process-wide.
type Conn struct {
	instance windows.Handle
	class    *uint16
	queue    []Event
}

var (
	activeMu sync.Mutex
	active   *Conn

	wndProcOnce sync.Once
	wndProcPtr  uintptr
)

// Open registers the window class and pins the calling goroutine to its OS
// thread; every later call must come from the same goroutine.
func Open() (*Conn, error) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		return nil, errors.New("win32: connection already open")
	}

	runtime.LockOSThread()

	c := &Conn{instance: moduleHandle()}
	class, err := windows.UTF16PtrFromString(className)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	c.class = class

	wndProcOnce.Do(func() { wndProcPtr = windows.NewCallback(wndProc) })
	wc := wndClassEx{
		cbSize:        uint32(unsafe.Sizeof(wndClassEx{})),
		style:         csHRedraw | csVRedraw,
		lpfnWndProc:   wndProcPtr,
		hInstance:     c.instance,
		hCursor:       loadCursor(),
		hbrBackground: stockObject(whiteBrush),
		lpszClassName: class,
	}
	ret, _, callErr := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc)))
	if ret == 0 {
		// A previous connection in this process already registered it.
		if errno, ok := callErr.(windows.Errno); !ok || errno != errorClassAlreadyExists {
			runtime.UnlockOSThread()
			return nil, winErr("RegisterClassExW", callErr)
		}
	}

	active = c
	return c, nil
}

// CreateWindow creates and shows a top-level window whose client area is
// width x height.
func (c *Conn) CreateWindow(x, y, width, height int, title string) (windows.HWND, error) {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	w, h := outerSize(width, height, wsOverlappedWindow)
	ret, _, callErr := procCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(c.class)),
		uintptr(unsafe.Pointer(titlePtr)),
		wsOverlappedWindow,
		uintptr(int32(x)),
		uintptr(int32(y)),
		uintptr(int32(w)),
		uintptr(int32(h)),
		0,
		0,
		uintptr(c.instance),
		0,
	)
	if ret == 0 {
		return 0, winErr("CreateWindowExW", callErr)
	}
	hwnd := windows.HWND(ret)
	procShowWindow.Call(uintptr(hwnd), swShow)
	procUpdateWindow.Call(uintptr(hwnd))
	return hwnd, nil
}

// SetTitle replaces the caption.
func (c *Conn) SetTitle(hwnd windows.HWND, title string) error {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	ret, _, callErr := procSetWindowText.Call(uintptr(hwnd), uintptr(unsafe.Pointer(titlePtr)))
	if ret == 0 {
		return winErr("SetWindowTextW", callErr)
	}
	return nil
}

// DestroyWindow destroys hwnd and drops its queued messages.
func (c *Conn) DestroyWindow(hwnd windows.HWND) error {
	ret, _, callErr := procDestroyWindow.Call(uintptr(hwnd))
	if ret == 0 {
		return winErr("DestroyWindow", callErr)
	}
	c.queue = dropWindow(c.queue, hwnd)
	return nil
}

// Size returns the client area size.
func (c *Conn) Size(hwnd windows.HWND) (int, int, error) {
	r, err := clientRect(hwnd)
	if err != nil {
		return 0, 0, err
	}
	return int(r.right - r.left), int(r.bottom - r.top), nil
}

// Flush pushes batched GDI calls to the screen.
func (c *Conn) Flush() error {
	procGdiFlush.Call()
	return nil
}

// Next returns one translated message. It pumps at most one native message
// when nothing is queued; ok is false when that message produced no event.
func (c *Conn) Next() (ev Event, ok bool, err error) {
	if len(c.queue) == 0 {
		var m msg
		ret, _, callErr := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(ret) {
		case 0:
			return Event{}, false, ErrQuit
		case -1:
			return Event{}, false, winErr("GetMessageW", callErr)
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
	if len(c.queue) == 0 {
		return Event{}, false, nil
	}
	ev = c.queue[0]
	c.queue = c.queue[1:]
	return ev, true, nil
}

// Close unregisters the connection so another can be opened.
func (c *Conn) Close() {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active == c {
		active = nil
		runtime.UnlockOSThread()
	}
}

func (c *Conn) push(ev Event) {
	c.queue = append(c.queue, ev)
}

func dropWindow(queue []Event, hwnd windows.HWND) []Event {
	out := queue[:0]
	for _, ev := range queue {
		if ev.Window != hwnd {
			out = append(out, ev)
		}
	}
	return out
}

func wndProc(hwnd, message, wParam, lParam uintptr) uintptr {
	c := active
	if c == nil {
		ret, _, _ := procDefWindowProc.Call(hwnd, message, wParam, lParam)
		return ret
	}

	switch message {
	case wmClose:
		// Closing is decided by the window layer, not DefWindowProc.
		c.push(Event{Kind: EventClose, Window: windows.HWND(hwnd)})
		return 0
	case wmPaint:
		var ps paintStruct
		procBeginPaint.Call(hwnd, uintptr(unsafe.Pointer(&ps)))
		procEndPaint.Call(hwnd, uintptr(unsafe.Pointer(&ps)))
		c.push(Event{
			Kind:   EventPaint,
			Window: windows.HWND(hwnd),
			Left:   int(ps.rcPaint.left),
			Top:    int(ps.rcPaint.top),
			Right:  int(ps.rcPaint.right),
			Bottom: int(ps.rcPaint.bottom),
		})
		return 0
	case wmKeyDown:
		c.push(Event{
			Kind:    EventKeyDown,
			Window:  windows.HWND(hwnd),
			VK:      uint32(wParam),
			KeyName: keyName(lParam),
		})
		return 0
	case wmDestroy:
		logging.L().Debug("window destroyed", "hwnd", fmt.Sprintf("%#x", hwnd))
		return 0
	}
	ret, _, _ := procDefWindowProc.Call(hwnd, message, wParam, lParam)
	return ret
}
