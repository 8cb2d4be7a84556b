package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor is one active CRTC. Usable* is the part not covered by panels,
// equal to the full bounds when the window manager publishes no work area.
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int

	UsableX      int
	UsableY      int
	UsableWidth  int
	UsableHeight int
}

// GetMonitors lists active monitors using XRandR.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var workArea *ewmh.Workarea
	if areas, err := ewmh.WorkareaGet(c.XUtil); err == nil && len(areas) > 0 {
		desktop := 0
		if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(areas) {
			desktop = int(current)
		}
		workArea = &areas[desktop]
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		m := Monitor{
			ID:     i,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		}
		if workArea != nil {
			m = clipToWorkArea(m, int(workArea.X), int(workArea.Y), int(workArea.Width), int(workArea.Height))
		} else {
			m.UsableX, m.UsableY, m.UsableWidth, m.UsableHeight = m.X, m.Y, m.Width, m.Height
		}
		monitors = append(monitors, m)
	}

	return monitors, nil
}

// clipToWorkArea sets the usable rectangle to the intersection of the monitor
// and the work area, or to the whole monitor when they do not intersect.
func clipToWorkArea(m Monitor, waX, waY, waW, waH int) Monitor {
	x1 := max(m.X, waX)
	y1 := max(m.Y, waY)
	x2 := min(m.X+m.Width, waX+waW)
	y2 := min(m.Y+m.Height, waY+waH)

	if x2 > x1 && y2 > y1 {
		m.UsableX, m.UsableY, m.UsableWidth, m.UsableHeight = x1, y1, x2-x1, y2-y1
		return m
	}
	m.UsableX, m.UsableY, m.UsableWidth, m.UsableHeight = m.X, m.Y, m.Width, m.Height
	return m
}
