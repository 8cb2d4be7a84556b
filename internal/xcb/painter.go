package xcb

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// ErrNoFont is returned by Text when none of the core fonts could be opened.
var ErrNoFont = errors.New("no core X font available")

var fontNames = []string{"fixed", "9x15", "8x13", "6x13"}

const lineWidth = 2

// Painter owns one graphics context (and its font) shared by every window on
// a screen. Colors are applied to the GC, so they persist across surfaces.
type Painter struct {
	conn    *xgb.Conn
	GC      xproto.Gcontext
	Font    xproto.Font
	shifts  ColorShifts
	hasFont bool
}

// NewPainter creates a GC on the screen root. Failing to open a font is not
// fatal; text drawing is disabled instead.
func NewPainter(c *xgb.Conn, screen *xproto.ScreenInfo) (*Painter, error) {
	p := &Painter{conn: c, shifts: ShiftsForScreen(screen)}

	font, err := xproto.NewFontId(c)
	if err != nil {
		return nil, fmt.Errorf("allocate font id: %w", err)
	}
	for _, name := range fontNames {
		if xproto.OpenFontChecked(c, font, uint16(len(name)), name).Check() == nil {
			p.Font = font
			p.hasFont = true
			break
		}
	}

	gc, err := xproto.NewGcontextId(c)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("allocate gc id: %w", err)
	}

	// Value list order follows the bit positions of the mask (low to high).
	mask := uint32(xproto.GcForeground | xproto.GcBackground | xproto.GcLineWidth)
	values := []uint32{screen.BlackPixel, screen.WhitePixel, lineWidth}
	if p.hasFont {
		mask |= xproto.GcFont
		values = append(values, uint32(p.Font))
	}
	mask |= xproto.GcGraphicsExposures
	values = append(values, 0)

	err = xproto.CreateGCChecked(c, gc, xproto.Drawable(screen.Root), mask, values).Check()
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("create gc: %w", err)
	}
	p.GC = gc
	return p, nil
}

// SetColor changes the foreground pixel of the shared GC.
func (p *Painter) SetColor(r, g, b uint8) error {
	xproto.ChangeGC(p.conn, p.GC, xproto.GcForeground, []uint32{p.shifts.Pixel(r, g, b)})
	return nil
}

// Line draws one segment on d.
func (p *Painter) Line(d xproto.Drawable, x1, y1, x2, y2 int) error {
	seg := xproto.Segment{
		X1: clamp16(x1),
		Y1: clamp16(y1),
		X2: clamp16(x2),
		Y2: clamp16(y2),
	}
	xproto.PolySegment(p.conn, d, p.GC, []xproto.Segment{seg})
	return nil
}

// FillRect fills a rectangle on d.
func (p *Painter) FillRect(d xproto.Drawable, x, y, width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("invalid rectangle size %dx%d", width, height)
	}
	rect := xproto.Rectangle{
		X:      clamp16(x),
		Y:      clamp16(y),
		Width:  clampU16(width),
		Height: clampU16(height),
	}
	xproto.PolyFillRectangle(p.conn, d, p.GC, []xproto.Rectangle{rect})
	return nil
}

// Text draws an 8-bit string with its baseline at y. Strings longer than 255
// bytes are truncated.
func (p *Painter) Text(d xproto.Drawable, x, y int, text string) error {
	if !p.hasFont {
		return ErrNoFont
	}
	if text == "" {
		return nil
	}
	if len(text) > 255 {
		text = text[:255]
	}
	xproto.ImageText8(p.conn, byte(len(text)), d, p.GC, clamp16(x), clamp16(y), text)
	return nil
}

// Close frees the GC and font.
func (p *Painter) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if p.GC != 0 {
		xproto.FreeGC(p.conn, p.GC)
		p.GC = 0
	}
	if p.hasFont {
		xproto.CloseFont(p.conn, p.Font)
		p.hasFont = false
	}
}

func clamp16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

func clampU16(v int) uint16 {
	if v > 65535 {
		return 65535
	}
	if v < 0 {
		return 0
	}
	return uint16(v)
}
