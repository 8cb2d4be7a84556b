//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	csHRedraw = 0x0002
	csVRedraw = 0x0001

	wsOverlappedWindow = 0x00CF0000
	swShow             = 5

	wmDestroy = 0x0002
	wmPaint   = 0x000F
	wmClose   = 0x0010
	wmKeyDown = 0x0100

	whiteBrush  = 0
	idcArrow    = 32512
	psSolid     = 0
	transparent = 1
	taBaseline  = 24

	errorClassAlreadyExists = 1410
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground windows.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       windows.Handle
}

type point struct {
	x int32
	y int32
}

type msg struct {
	hwnd     windows.HWND
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

type rect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

type paintStruct struct {
	hdc         windows.Handle
	fErase      int32
	rcPaint     rect
	fRestore    int32
	fIncUpdate  int32
	rgbReserved [32]byte
}

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassEx    = user32.NewProc("RegisterClassExW")
	procCreateWindowEx     = user32.NewProc("CreateWindowExW")
	procDefWindowProc      = user32.NewProc("DefWindowProcW")
	procDestroyWindow      = user32.NewProc("DestroyWindow")
	procShowWindow         = user32.NewProc("ShowWindow")
	procUpdateWindow       = user32.NewProc("UpdateWindow")
	procSetWindowText      = user32.NewProc("SetWindowTextW")
	procGetClientRect      = user32.NewProc("GetClientRect")
	procAdjustWindowRectEx = user32.NewProc("AdjustWindowRectEx")
	procGetMessage         = user32.NewProc("GetMessageW")
	procTranslateMessage   = user32.NewProc("TranslateMessage")
	procDispatchMessage    = user32.NewProc("DispatchMessageW")
	procBeginPaint         = user32.NewProc("BeginPaint")
	procEndPaint           = user32.NewProc("EndPaint")
	procGetDC              = user32.NewProc("GetDC")
	procReleaseDC          = user32.NewProc("ReleaseDC")
	procFillRect           = user32.NewProc("FillRect")
	procLoadCursor         = user32.NewProc("LoadCursorW")
	procGetKeyNameText     = user32.NewProc("GetKeyNameTextW")

	procGetStockObject = gdi32.NewProc("GetStockObject")
	procCreatePen      = gdi32.NewProc("CreatePen")
	procCreateBrush    = gdi32.NewProc("CreateSolidBrush")
	procSelectObject   = gdi32.NewProc("SelectObject")
	procDeleteObject   = gdi32.NewProc("DeleteObject")
	procMoveToEx       = gdi32.NewProc("MoveToEx")
	procLineTo         = gdi32.NewProc("LineTo")
	procSetTextColor   = gdi32.NewProc("SetTextColor")
	procSetBkMode      = gdi32.NewProc("SetBkMode")
	procSetTextAlign   = gdi32.NewProc("SetTextAlign")
	procTextOut        = gdi32.NewProc("TextOutW")
	procGdiFlush       = gdi32.NewProc("GdiFlush")

	procGetModuleHandle = kernel32.NewProc("GetModuleHandleW")
)

func winErr(op string, err error) error {
	if errno, ok := err.(windows.Errno); ok && errno != 0 {
		return fmt.Errorf("%s failed: %w", op, errno)
	}
	return fmt.Errorf("%s failed", op)
}

func moduleHandle() windows.Handle {
	h, _, _ := procGetModuleHandle.Call(0)
	return windows.Handle(h)
}

func loadCursor() windows.Handle {
	h, _, _ := procLoadCursor.Call(0, idcArrow)
	return windows.Handle(h)
}

func stockObject(id int) windows.Handle {
	h, _, _ := procGetStockObject.Call(uintptr(id))
	return windows.Handle(h)
}

func clientRect(hwnd windows.HWND) (rect, error) {
	var r rect
	ret, _, err := procGetClientRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return rect{}, winErr("GetClientRect", err)
	}
	return r, nil
}

// outerSize grows a client size to the window size for style.
func outerSize(width, height int, style uint32) (int, int) {
	r := rect{right: int32(width), bottom: int32(height)}
	ret, _, _ := procAdjustWindowRectEx.Call(uintptr(unsafe.Pointer(&r)), uintptr(style), 0, 0)
	if ret == 0 {
		return width, height
	}
	return int(r.right - r.left), int(r.bottom - r.top)
}

// keyName asks the keyboard layout for a key's display name.
func keyName(lParam uintptr) string {
	var buf [64]uint16
	n, _, _ := procGetKeyNameText.Call(lParam, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// colorRef packs a COLORREF (0x00BBGGRR).
func colorRef(r, g, b uint8) uintptr {
	return uintptr(r) | uintptr(g)<<8 | uintptr(b)<<16
}
