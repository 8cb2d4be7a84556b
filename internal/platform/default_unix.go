//go:build !windows

package platform

// DefaultOrder is the backend preference order used when none is configured.
func DefaultOrder() []Kind {
	return []Kind{KindX11, KindXCB}
}
