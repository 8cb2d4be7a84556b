// Package wwind is a small cross-platform windowing layer. A single [State]
// owns the connection to one window system (X11 through xgbutil, raw X
// through xgb, Win32, or an off-screen headless backend), the registry of
// windows created through it, and the event loop that routes close, redraw
// and key events to per-window handlers.
//
// Only one State may exist per process. It is not safe for concurrent use;
// create it, register handlers, and call [State.Run] from one goroutine.
//
//	s, err := wwind.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Close()
//
//	w, err := s.AddWindow(100, 100, 300, 400, "hello")
//	if err != nil {
//		log.Fatal(err)
//	}
//	w.OnRedrawFunc(func(s *wwind.State, w *wwind.Window, _ platform.Rect) {
//		dc, _ := w.DrawingContext()
//		dc.DrawText(20, 40, "hello")
//	})
//	if err := s.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// Destruction is deferred: closing a window only schedules it, and the
// native window is destroyed after the current event has been dispatched.
// Handlers can therefore always use the window they were called for.
package wwind
