package wwind

import (
	"github.com/1broseidon/wwind/internal/logging"
	"github.com/1broseidon/wwind/internal/platform"
)

// DrawingContext draws into one window. Failures are logged and returned;
// they never affect the State. Drawing becomes visible when the event loop
// flushes after the current handler returns.
type DrawingContext struct {
	handle  Handle
	surface platform.Surface
}

func (dc *DrawingContext) logged(op string, err error) error {
	if err != nil {
		logging.L().Warn("draw failed", "window", dc.handle.String(), "op", op, "err", err)
	}
	return err
}

// SetColor selects the color for subsequent drawing.
func (dc *DrawingContext) SetColor(c platform.Color) error {
	return dc.logged("set-color", dc.surface.SetColor(c))
}

// DrawLine draws a line from (x1, y1) to (x2, y2).
func (dc *DrawingContext) DrawLine(x1, y1, x2, y2 int) error {
	return dc.logged("line", dc.surface.DrawLine(x1, y1, x2, y2))
}

// DrawRectangle fills r.
func (dc *DrawingContext) DrawRectangle(r platform.Rect) error {
	return dc.logged("rectangle", dc.surface.DrawRectangle(r))
}

// DrawText draws text with its baseline starting at (x, y).
func (dc *DrawingContext) DrawText(x, y int, text string) error {
	return dc.logged("text", dc.surface.DrawText(x, y, text))
}
