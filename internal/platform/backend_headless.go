package platform

import (
	"errors"

	"github.com/1broseidon/wwind/internal/headless"
)

func init() {
	Register(KindHeadless, func(opts Options) (Backend, error) {
		return NewHeadlessBackend(opts.Headless)
	})
}

// HeadlessBackend implements Backend with off-screen canvases. It never
// fails to connect, so it is only tried when named explicitly.
type HeadlessBackend struct {
	screen *headless.Screen
}

var _ Backend = (*HeadlessBackend)(nil)

// NewHeadlessBackend creates an off-screen backend fed by opts.Events.
func NewHeadlessBackend(opts HeadlessOptions) (*HeadlessBackend, error) {
	script := make([]headless.Event, 0, len(opts.Events))
	for _, ev := range opts.Events {
		script = append(script, toHeadlessEvent(ev))
	}
	screen, err := headless.New(headless.Options{
		OutputDir: opts.OutputDir,
		FontSize:  opts.FontSize,
		Script:    script,
	})
	if err != nil {
		return nil, err
	}
	return &HeadlessBackend{screen: screen}, nil
}

// Screen exposes the canvases, mainly for tests and image export.
func (b *HeadlessBackend) Screen() *headless.Screen { return b.screen }

func (b *HeadlessBackend) Kind() Kind { return KindHeadless }

func (b *HeadlessBackend) CreateWindow(_, _, width, height int, title string) (NativeWindow, error) {
	id, err := b.screen.CreateWindow(width, height, title)
	return NativeWindow(id), err
}

func (b *HeadlessBackend) SetTitle(w NativeWindow, title string) error {
	return b.screen.SetTitle(uint64(w), title)
}

func (b *HeadlessBackend) DestroyWindow(w NativeWindow) error {
	return b.screen.Destroy(uint64(w))
}

func (b *HeadlessBackend) Size(w NativeWindow) (int, int, error) {
	c, err := b.screen.Canvas(uint64(w))
	if err != nil {
		return 0, 0, err
	}
	width, height := c.Size()
	return width, height, nil
}

func (b *HeadlessBackend) Surface(w NativeWindow) (Surface, error) {
	c, err := b.screen.Canvas(uint64(w))
	if err != nil {
		return nil, err
	}
	return headlessSurface{c}, nil
}

func (b *HeadlessBackend) Flush() error {
	return b.screen.Flush()
}

// WaitForEvent reports ErrDisconnected once the screen has nothing left to
// deliver.
func (b *HeadlessBackend) WaitForEvent(sink EventSink) error {
	ev, err := b.screen.Next()
	if errors.Is(err, headless.ErrExhausted) {
		return ErrDisconnected
	}
	if err != nil {
		return err
	}
	sink(fromHeadlessEvent(ev))
	return nil
}

func (b *HeadlessBackend) Disconnect() error {
	b.screen.Close()
	return nil
}

type headlessSurface struct {
	c *headless.Canvas
}

func (s headlessSurface) SetColor(c Color) error {
	s.c.SetColor(c.Red, c.Green, c.Blue)
	return nil
}

func (s headlessSurface) DrawLine(x1, y1, x2, y2 int) error {
	return s.c.Line(x1, y1, x2, y2)
}

func (s headlessSurface) DrawRectangle(r Rect) error {
	return s.c.FillRect(r.X, r.Y, r.Width, r.Height)
}

func (s headlessSurface) DrawText(x, y int, text string) error {
	s.c.Text(x, y, text)
	return nil
}

var headlessKinds = map[EventType]headless.EventKind{
	EventCloseRequested: headless.EventClose,
	EventExpose:         headless.EventExpose,
	EventKeyDown:        headless.EventKeyDown,
}

func toHeadlessEvent(ev Event) headless.Event {
	return headless.Event{
		Kind:    headlessKinds[ev.Type],
		Window:  uint64(ev.Window),
		X:       ev.Region.X,
		Y:       ev.Region.Y,
		Width:   ev.Region.Width,
		Height:  ev.Region.Height,
		KeyCode: ev.Key.Code,
		KeyName: ev.Key.Name,
	}
}

func fromHeadlessEvent(ev headless.Event) Event {
	var t EventType
	for k, v := range headlessKinds {
		if v == ev.Kind {
			t = k
		}
	}
	return Event{
		Type:   t,
		Window: NativeWindow(ev.Window),
		Region: Rect{X: ev.X, Y: ev.Y, Width: ev.Width, Height: ev.Height},
		Key:    Key{Code: ev.KeyCode, Name: ev.KeyName},
	}
}
