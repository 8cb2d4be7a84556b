package platform

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/1broseidon/wwind/internal/logging"
)

// HeadlessOptions configures the off-screen backend.
type HeadlessOptions struct {
	OutputDir string
	FontSize  float64
	Events    []Event
}

// Options are passed to every backend factory.
type Options struct {
	// Display is the X display name; empty means $DISPLAY.
	Display  string
	Headless HeadlessOptions
}

// Factory connects one backend.
type Factory func(opts Options) (Backend, error)

var (
	factoriesMu sync.RWMutex
	factories   = map[Kind]Factory{}
)

// Register makes a backend factory available under kind. Registering the same
// kind twice replaces the earlier factory.
func Register(kind Kind, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[kind] = f
}

// Available lists the registered backend kinds in sorted order.
func Available() []Kind {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	kinds := make([]Kind, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func lookup(kind Kind) (Factory, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	f, ok := factories[kind]
	return f, ok
}

// Connect tries each backend in order and returns the first that connects.
// An empty order means DefaultOrder(). When every backend fails the returned
// error joins all individual failures.
func Connect(order []Kind, opts Options) (Backend, error) {
	if len(order) == 0 {
		order = DefaultOrder()
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("no backends available on this platform")
	}

	var errs []error
	for _, kind := range order {
		f, ok := lookup(kind)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %w", kind, ErrUnknownBackend))
			continue
		}
		b, err := f(opts)
		if err != nil {
			logging.L().Debug("backend failed to connect", "backend", string(kind), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
			continue
		}
		logging.L().Info("backend connected", "backend", string(kind))
		return b, nil
	}
	return nil, errors.Join(errs...)
}

// ParseKind validates a backend name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindX11, KindXCB, KindWin32, KindHeadless:
		return k, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownBackend)
	}
}
