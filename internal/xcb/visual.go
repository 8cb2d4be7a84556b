package xcb

import "github.com/BurntSushi/xgb/xproto"

// ColorShifts maps 8-bit RGB channels onto a TrueColor visual's pixel layout.
type ColorShifts struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// DefaultShifts is the common 24-bit 0xRRGGBB layout.
var DefaultShifts = ColorShifts{Red: 16, Green: 8, Blue: 0}

func firstBit(mask uint32) uint8 {
	if mask == 0 {
		return 0
	}
	var pos uint8
	for mask&1 == 0 {
		pos++
		mask >>= 1
	}
	return pos
}

// ShiftsForScreen finds the root visual of screen and derives channel shifts
// from its masks. Falls back to DefaultShifts if the visual is not listed.
func ShiftsForScreen(screen *xproto.ScreenInfo) ColorShifts {
	if screen == nil {
		return DefaultShifts
	}
	for _, depth := range screen.AllowedDepths {
		if depth.Depth != screen.RootDepth {
			continue
		}
		for _, v := range depth.Visuals {
			if v.VisualId == screen.RootVisual {
				return ShiftsFromMasks(v.RedMask, v.GreenMask, v.BlueMask)
			}
		}
	}
	return DefaultShifts
}

// ShiftsFromMasks derives shifts from visual channel masks.
func ShiftsFromMasks(red, green, blue uint32) ColorShifts {
	return ColorShifts{
		Red:   firstBit(red),
		Green: firstBit(green),
		Blue:  firstBit(blue),
	}
}

// Pixel packs an RGB triple into a pixel value.
func (s ColorShifts) Pixel(r, g, b uint8) uint32 {
	return uint32(r)<<s.Red | uint32(g)<<s.Green | uint32(b)<<s.Blue
}
