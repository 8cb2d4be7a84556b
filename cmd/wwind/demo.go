package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/1broseidon/wwind"
	"github.com/1broseidon/wwind/internal/config"
	"github.com/1broseidon/wwind/internal/platform"
)

var (
	background = platform.Color{Red: 0xf4, Green: 0xf1, Blue: 0xea}
	accent     = platform.Color{Red: 0x2f, Green: 0x6f, Blue: 0xb3}
	ink        = platform.Color{Red: 0x20, Green: 0x20, Blue: 0x20}
)

func runDemo(args []string) int {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wwind/config.yaml)")
	backends := fs.String("backend", "", "Comma-separated backend order (overrides config)")
	title := fs.String("title", "", "Window title (overrides config)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wwind demo [--path PATH] [--backend x11,xcb] [--title TITLE]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keys: n opens another window, w closes the focused one, q or Escape quits.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	setupLogging(cfg.LogLevel)

	order, err := parseBackendList(*backends)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *title != "" {
		cfg.Window.Title = *title
	}

	opts := []wwind.Option{wwind.WithConfig(cfg)}
	if len(order) > 0 {
		opts = append(opts, wwind.WithBackends(order...))
	}
	s, err := wwind.New(opts...)
	if err != nil {
		log.Printf("Failed to open display: %v", err)
		return 1
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("Close: %v", err)
		}
	}()
	log.Printf("Using %s backend", s.Kind())

	d := &demo{cfg: cfg.Window}
	err = s.RunWith(func(s *wwind.State) {
		d.open(s, d.cfg.Title)
	})
	if err != nil && !errors.Is(err, platform.ErrDisconnected) {
		log.Printf("Event loop: %v", err)
		return 1
	}
	log.Printf("Opened %d window(s), %d key presses", d.opened, d.keys)
	return 0
}

type demo struct {
	cfg    config.WindowConfig
	opened int
	keys   int
	last   string
}

// origin centers the window on the first display when the backend can list
// them, falling back to the configured position.
func (d *demo) origin(s *wwind.State) (int16, int16) {
	displays, err := s.Displays()
	if err != nil || len(displays) == 0 {
		return d.cfg.X, d.cfg.Y
	}
	area := displays[0].Usable
	x := area.X + (area.Width-int(d.cfg.Width))/2 + 24*d.opened
	y := area.Y + (area.Height-int(d.cfg.Height))/2 + 24*d.opened
	return int16(x), int16(y)
}

func (d *demo) open(s *wwind.State, title string) {
	x, y := d.origin(s)
	w, err := s.AddWindow(x, y, d.cfg.Height, d.cfg.Width, title)
	if err != nil {
		log.Printf("Failed to create window: %v", err)
		return
	}
	d.opened++
	w.OnRedrawFunc(d.redraw)
	w.OnKeydownFunc(d.keydown)
	w.OnCloseFunc(func(s *wwind.State, w *wwind.Window) {
		log.Printf("Closing %s", w.Handle())
		w.ScheduleDestruction()
	})
}

func (d *demo) redraw(_ *wwind.State, w *wwind.Window, _ platform.Rect) {
	dc, err := w.DrawingContext()
	if err != nil {
		log.Printf("No drawing context for %s: %v", w.Handle(), err)
		return
	}
	width, height, err := w.Size()
	if err != nil {
		width, height = int(d.cfg.Width), int(d.cfg.Height)
	}

	_ = dc.SetColor(background)
	_ = dc.DrawRectangle(platform.Rect{Width: width, Height: height})
	_ = dc.SetColor(accent)
	_ = dc.DrawRectangle(platform.Rect{X: 16, Y: 16, Width: width - 32, Height: 28})
	_ = dc.DrawLine(16, height-16, width-16, 60)
	_ = dc.SetColor(ink)
	_ = dc.DrawText(24, 80, fmt.Sprintf("%s on %s", w.Handle(), w.State().Kind()))
	if d.last != "" {
		_ = dc.DrawText(24, 100, "last key: "+d.last)
	}
}

func (d *demo) keydown(s *wwind.State, w *wwind.Window, key platform.Key) {
	d.keys++
	d.last = key.Name
	if d.last == "" {
		d.last = fmt.Sprintf("#%d", key.Code)
	}

	switch key.Name {
	case "q", "Q", "Escape", "Esc":
		s.RequestExit()
	case "n", "N":
		d.open(s, fmt.Sprintf("%s #%d", d.cfg.Title, d.opened+1))
	case "w", "W":
		w.ScheduleDestruction()
	default:
		// Repaint to show the key.
		d.redraw(s, w, platform.Rect{})
	}
}
