package x11

import "testing"

func TestClipToWorkAreaRemovesPanel(t *testing.T) {
	m := Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	got := clipToWorkArea(m, 0, 32, 1920, 1048)

	if got.UsableX != 0 || got.UsableY != 32 || got.UsableWidth != 1920 || got.UsableHeight != 1048 {
		t.Fatalf("unexpected usable area: %+v", got)
	}
	if got.Width != 1920 || got.Height != 1080 {
		t.Fatalf("bounds must not change: %+v", got)
	}
}

func TestClipToWorkAreaSecondMonitor(t *testing.T) {
	// Work area spans both monitors; the right monitor keeps its own bounds.
	m := Monitor{X: 1920, Y: 0, Width: 1280, Height: 1024}
	got := clipToWorkArea(m, 0, 24, 3200, 1056)

	if got.UsableX != 1920 || got.UsableY != 24 || got.UsableWidth != 1280 || got.UsableHeight != 1000 {
		t.Fatalf("unexpected usable area: %+v", got)
	}
}

func TestClipToWorkAreaDisjointFallsBackToBounds(t *testing.T) {
	m := Monitor{X: 1920, Y: 0, Width: 1280, Height: 1024}
	got := clipToWorkArea(m, 0, 0, 1920, 1080)

	if got.UsableX != m.X || got.UsableY != m.Y || got.UsableWidth != m.Width || got.UsableHeight != m.Height {
		t.Fatalf("expected fallback to bounds, got %+v", got)
	}
}
