//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// lineWidth matches the X backends.
const lineWidth = 2

// Surface draws on a window through a short-lived device context per call.
type Surface struct {
	hwnd  windows.HWND
	color uintptr
}

// Surface returns a drawing surface for hwnd, initially black.
func (c *Conn) Surface(hwnd windows.HWND) *Surface {
	return &Surface{hwnd: hwnd}
}

func (s *Surface) withDC(op string, draw func(dc uintptr) error) error {
	dc, _, err := procGetDC.Call(uintptr(s.hwnd))
	if dc == 0 {
		return winErr(op+": GetDC", err)
	}
	defer procReleaseDC.Call(uintptr(s.hwnd), dc)
	return draw(dc)
}

// SetColor selects the color for later calls.
func (s *Surface) SetColor(r, g, b uint8) {
	s.color = colorRef(r, g, b)
}

// Line draws from (x1, y1) to (x2, y2).
func (s *Surface) Line(x1, y1, x2, y2 int) error {
	return s.withDC("Line", func(dc uintptr) error {
		pen, _, err := procCreatePen.Call(psSolid, lineWidth, s.color)
		if pen == 0 {
			return winErr("CreatePen", err)
		}
		defer procDeleteObject.Call(pen)
		old, _, _ := procSelectObject.Call(dc, pen)
		defer procSelectObject.Call(dc, old)

		procMoveToEx.Call(dc, uintptr(int32(x1)), uintptr(int32(y1)), 0)
		if ret, _, err := procLineTo.Call(dc, uintptr(int32(x2)), uintptr(int32(y2))); ret == 0 {
			return winErr("LineTo", err)
		}
		return nil
	})
}

// FillRect fills the rectangle with its top-left corner at (x, y).
func (s *Surface) FillRect(x, y, width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("negative rectangle size %dx%d", width, height)
	}
	return s.withDC("FillRect", func(dc uintptr) error {
		brush, _, err := procCreateBrush.Call(s.color)
		if brush == 0 {
			return winErr("CreateSolidBrush", err)
		}
		defer procDeleteObject.Call(brush)

		r := rect{left: int32(x), top: int32(y), right: int32(x + width), bottom: int32(y + height)}
		if ret, _, err := procFillRect.Call(dc, uintptr(unsafe.Pointer(&r)), brush); ret == 0 {
			return winErr("FillRect", err)
		}
		return nil
	})
}

// Text draws text with its baseline starting at (x, y).
func (s *Surface) Text(x, y int, text string) error {
	utf16, err := windows.UTF16FromString(text)
	if err != nil {
		return err
	}
	return s.withDC("Text", func(dc uintptr) error {
		procSetTextColor.Call(dc, s.color)
		procSetBkMode.Call(dc, transparent)
		procSetTextAlign.Call(dc, taBaseline)
		// Length excludes the terminating NUL.
		n := len(utf16) - 1
		if n == 0 {
			return nil
		}
		ret, _, err := procTextOut.Call(dc, uintptr(int32(x)), uintptr(int32(y)), uintptr(unsafe.Pointer(&utf16[0])), uintptr(n))
		if ret == 0 {
			return winErr("TextOutW", err)
		}
		return nil
	})
}
