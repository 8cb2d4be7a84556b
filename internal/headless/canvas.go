package headless

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// lineWidth matches the X graphics context so output looks alike.
const lineWidth = 2

// Canvas is the raster surface backing one headless window.
type Canvas struct {
	ctx   *gg.Context
	title string
	dirty bool
}

func newCanvas(width, height int, face text.Face, title string) *Canvas {
	ctx := gg.NewContext(width, height)
	ctx.ClearWithColor(gg.White)
	ctx.SetLineWidth(lineWidth)
	ctx.SetFont(face)
	ctx.SetRGB(0, 0, 0)
	return &Canvas{ctx: ctx, title: title, dirty: true}
}

// SetColor selects the color for subsequent drawing.
func (c *Canvas) SetColor(r, g, b uint8) {
	c.ctx.SetRGB(float64(r)/255, float64(g)/255, float64(b)/255)
}

// Line strokes a segment from (x1, y1) to (x2, y2).
func (c *Canvas) Line(x1, y1, x2, y2 int) error {
	c.ctx.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
	c.dirty = true
	return c.ctx.Stroke()
}

// FillRect fills the rectangle with its top-left corner at (x, y).
func (c *Canvas) FillRect(x, y, width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("negative rectangle size %dx%d", width, height)
	}
	c.ctx.DrawRectangle(float64(x), float64(y), float64(width), float64(height))
	c.dirty = true
	return c.ctx.Fill()
}

// Text draws s with its baseline starting at (x, y).
func (c *Canvas) Text(x, y int, s string) {
	c.ctx.DrawString(s, float64(x), float64(y))
	c.dirty = true
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) {
	return c.ctx.Width(), c.ctx.Height()
}

// Title returns the window title.
func (c *Canvas) Title() string {
	return c.title
}

// Image returns the current pixels.
func (c *Canvas) Image() image.Image {
	return c.ctx.Image()
}

func (c *Canvas) close() {
	_ = c.ctx.Close()
}
