// Package headless implements windows as in-memory raster canvases. Input is
// a scripted event list; once it runs out every remaining window receives one
// close request, mirroring a user who closes everything.
package headless

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/1broseidon/wwind/internal/logging"
)

// DefaultFontSize is used when Options.FontSize is zero.
const DefaultFontSize = 13

var (
	// ErrExhausted is returned by Next when no event can be produced anymore.
	ErrExhausted = errors.New("headless: no more events")
	// ErrUnknownWindow is returned for ids that were never created or are destroyed.
	ErrUnknownWindow = errors.New("headless: unknown window")
)

// EventKind classifies a headless event.
type EventKind int

const (
	EventClose EventKind = iota + 1
	EventExpose
	EventKeyDown
)

// Event is one scripted or synthesized input event.
type Event struct {
	Kind    EventKind
	Window  uint64
	X       int
	Y       int
	Width   int
	Height  int
	KeyCode uint32
	KeyName string
}

// Options configures a Screen.
type Options struct {
	// OutputDir receives window-<id>.png for every window drawn to since the
	// previous Flush. Empty disables file output.
	OutputDir string
	FontSize  float64
	Script    []Event
}

// Screen owns every headless window. Window ids start at 1 and are never
// reused.
type Screen struct {
	opts      Options
	face      text.Face
	nextID    uint64
	windows   map[uint64]*Canvas
	order     []uint64
	pending   []Event
	script    []Event
	requested map[uint64]bool
}

// New prepares a screen with the Go regular font loaded.
func New(opts Options) (*Screen, error) {
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultFontSize
	}
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	return &Screen{
		opts:      opts,
		face:      source.Face(opts.FontSize),
		windows:   make(map[uint64]*Canvas),
		script:    append([]Event(nil), opts.Script...),
		requested: make(map[uint64]bool),
	}, nil
}

// CreateWindow allocates a canvas and queues the initial expose, as a window
// manager would after mapping. The position is ignored.
func (s *Screen) CreateWindow(width, height int, title string) (uint64, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("invalid window size %dx%d", width, height)
	}
	s.nextID++
	id := s.nextID
	s.windows[id] = newCanvas(width, height, s.face, title)
	s.order = append(s.order, id)
	s.pending = append(s.pending, Event{Kind: EventExpose, Window: id, Width: width, Height: height})
	return id, nil
}

// Canvas returns the canvas of a live window.
func (s *Screen) Canvas(id uint64) (*Canvas, error) {
	c, ok := s.windows[id]
	if !ok {
		return nil, fmt.Errorf("window %d: %w", id, ErrUnknownWindow)
	}
	return c, nil
}

// SetTitle renames a live window.
func (s *Screen) SetTitle(id uint64, title string) error {
	c, err := s.Canvas(id)
	if err != nil {
		return err
	}
	c.title = title
	return nil
}

// Destroy releases a window's canvas.
func (s *Screen) Destroy(id uint64) error {
	c, err := s.Canvas(id)
	if err != nil {
		return err
	}
	c.close()
	delete(s.windows, id)
	for i, w := range s.order {
		if w == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Windows returns the live window ids in creation order.
func (s *Screen) Windows() []uint64 {
	return append([]uint64(nil), s.order...)
}

// Push appends events to the script.
func (s *Screen) Push(events ...Event) {
	s.script = append(s.script, events...)
}

// Next returns the next event: queued exposes first, then the script, then
// one close request per remaining window.
func (s *Screen) Next() (Event, error) {
	if len(s.pending) > 0 {
		ev := s.pending[0]
		s.pending = s.pending[1:]
		return ev, nil
	}
	if len(s.script) > 0 {
		ev := s.script[0]
		s.script = s.script[1:]
		return ev, nil
	}
	for _, id := range s.order {
		if !s.requested[id] {
			s.requested[id] = true
			logging.L().Debug("script finished, requesting close", "window", id)
			return Event{Kind: EventClose, Window: id}, nil
		}
	}
	return Event{}, ErrExhausted
}

// PNGPath is where Flush writes the window's image.
func (s *Screen) PNGPath(id uint64) string {
	return filepath.Join(s.opts.OutputDir, fmt.Sprintf("window-%d.png", id))
}

// Flush writes every window changed since the last flush to OutputDir.
func (s *Screen) Flush() error {
	if s.opts.OutputDir == "" {
		for _, c := range s.windows {
			c.dirty = false
		}
		return nil
	}
	var errs []error
	for _, id := range s.order {
		c := s.windows[id]
		if !c.dirty {
			continue
		}
		if err := c.ctx.SavePNG(s.PNGPath(id)); err != nil {
			errs = append(errs, fmt.Errorf("window %d: %w", id, err))
			continue
		}
		c.dirty = false
	}
	return errors.Join(errs...)
}

// Close releases every remaining canvas.
func (s *Screen) Close() {
	for id, c := range s.windows {
		c.close()
		delete(s.windows, id)
	}
	s.order = nil
}
