package wwind

import (
	"fmt"

	"github.com/1broseidon/wwind/internal/platform"
)

// Handle identifies a window. It records which backend created it, so two
// handles compare equal only if both the backend and the native id match.
// Handles are comparable and may be used as map keys.
type Handle struct {
	kind   platform.Kind
	native platform.NativeWindow
}

// Kind returns the backend that created the window.
func (h Handle) Kind() platform.Kind { return h.kind }

// Native returns the backend-specific id (X window or HWND).
func (h Handle) Native() platform.NativeWindow { return h.native }

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h == Handle{} }

func (h Handle) String() string {
	if h.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%s:%#x", h.kind, uint64(h.native))
}
