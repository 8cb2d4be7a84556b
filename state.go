package wwind

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/1broseidon/wwind/internal/config"
	"github.com/1broseidon/wwind/internal/logging"
	"github.com/1broseidon/wwind/internal/platform"
)

var (
	// ErrAlreadyActive is returned by New while another State is open.
	ErrAlreadyActive = errors.New("wwind: display state already active")
	// ErrNoBackend is returned by New when no backend could connect. It
	// wraps the individual backend errors.
	ErrNoBackend = errors.New("wwind: no backend available")
	// ErrUnknownWindow is returned for handles that are not registered.
	ErrUnknownWindow = errors.New("wwind: unknown window")
	// ErrClosed is returned by operations on a closed State.
	ErrClosed = errors.New("wwind: display state closed")
	// ErrInCallback is returned by operations that cannot run from a handler.
	ErrInCallback = errors.New("wwind: not allowed while a handler is running")
)

var (
	active     atomic.Bool
	activeKind atomic.Pointer[platform.Kind]
)

// ActiveKind returns the backend kind of the open State, or "" when none is
// open.
func ActiveKind() platform.Kind {
	if k := activeKind.Load(); k != nil {
		return *k
	}
	return ""
}

// State is the process-wide display state. See the package documentation.
type State struct {
	backend platform.Backend
	kind    platform.Kind

	entries map[Handle]*entry
	order   []Handle
	queue   *destroyQueue

	userdata any

	exit   bool
	depth  int
	closed bool
}

type options struct {
	cfg      *config.Config
	backends []platform.Kind
	backend  platform.Backend
	userdata any
}

// Option configures New.
type Option func(*options)

// WithConfig supplies the configuration used to select and set up backends.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithBackends overrides the backend preference order.
func WithBackends(kinds ...platform.Kind) Option {
	return func(o *options) { o.backends = kinds }
}

// WithBackend uses an already connected backend. The State takes ownership
// and disconnects it on Close.
func WithBackend(b platform.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithUserData sets the initial value returned by State.UserData.
func WithUserData(v any) Option {
	return func(o *options) { o.userdata = v }
}

// New connects to the first available backend and returns the display
// state. Only one State can be open at a time.
func New(opts ...Option) (*State, error) {
	if !active.CompareAndSwap(false, true) {
		return nil, ErrAlreadyActive
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg == nil {
		o.cfg = config.DefaultConfig()
	}

	b := o.backend
	if b == nil {
		order := o.backends
		if len(order) == 0 {
			order = o.cfg.Backends
		}
		var err error
		b, err = platform.Connect(order, o.cfg.PlatformOptions())
		if err != nil {
			active.Store(false)
			return nil, fmt.Errorf("%w: %w", ErrNoBackend, err)
		}
	}

	s := &State{
		backend:  b,
		kind:     b.Kind(),
		entries:  make(map[Handle]*entry),
		queue:    newDestroyQueue(),
		userdata: o.userdata,
	}
	kind := s.kind
	activeKind.Store(&kind)
	logging.L().Info("display state opened", "backend", string(kind))
	return s, nil
}

// Close destroys every remaining window, disconnects the backend and allows
// a new State to be created. Closing twice is a no-op.
func (s *State) Close() error {
	if s.closed {
		return nil
	}
	if s.depth > 0 {
		return ErrInCallback
	}

	var errs []error
	for i := len(s.order) - 1; i >= 0; i-- {
		h := s.order[i]
		if err := s.backend.DestroyWindow(h.native); err != nil {
			errs = append(errs, fmt.Errorf("destroy %s: %w", h, err))
		}
		s.entries[h].releaseAll()
	}
	s.entries = make(map[Handle]*entry)
	s.order = nil
	s.queue.reset()

	if err := s.backend.Disconnect(); err != nil {
		errs = append(errs, fmt.Errorf("disconnect: %w", err))
	}
	release(s.userdata)
	s.userdata = nil

	s.closed = true
	activeKind.Store(nil)
	active.Store(false)
	logging.L().Info("display state closed", "backend", string(s.kind))
	return errors.Join(errs...)
}

// UserData returns the application value attached to the State.
func (s *State) UserData() any { return s.userdata }

// SetUserData attaches v to the State, replacing any earlier value. On Close
// the value is dropped and, if it implements Releaser, released.
func (s *State) SetUserData(v any) { s.userdata = v }

// Kind returns the connected backend kind.
func (s *State) Kind() platform.Kind { return s.kind }

// Displays lists the monitors of the window system when the backend can
// enumerate them.
func (s *State) Displays() ([]platform.Display, error) {
	if s.closed {
		return nil, ErrClosed
	}
	lister, ok := s.backend.(platform.DisplayLister)
	if !ok {
		return nil, fmt.Errorf("%s: listing displays: %w", s.kind, platform.ErrUnsupported)
	}
	return lister.Displays()
}

// RequestExit makes Run return after the current event.
func (s *State) RequestExit() { s.exit = true }

// ExitRequested reports whether RequestExit has been called.
func (s *State) ExitRequested() bool { return s.exit }
