package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/wwind/internal/platform"
)

// Config is the effective configuration after defaults and includes.
type Config struct {
	// Backends is the preference order; empty means the platform default.
	Backends []platform.Kind `yaml:"backends"`
	// Display is the X display to connect to; empty means $DISPLAY.
	Display  string          `yaml:"display,omitempty"`
	LogLevel string          `yaml:"log_level"`
	Headless HeadlessConfig  `yaml:"headless"`
	Window   WindowConfig    `yaml:"window"`
}

// HeadlessConfig configures the off-screen backend.
type HeadlessConfig struct {
	OutputDir string        `yaml:"output_dir,omitempty"`
	FontSize  float64       `yaml:"font_size"`
	Events    []EventConfig `yaml:"events,omitempty"`
}

// EventConfig is one scripted headless event. Window is the 1-based creation
// index of the target window.
type EventConfig struct {
	Type   string `yaml:"type"`
	Window uint64 `yaml:"window"`
	X      int    `yaml:"x,omitempty"`
	Y      int    `yaml:"y,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Key    string `yaml:"key,omitempty"`
	Code   uint32 `yaml:"code,omitempty"`
}

// WindowConfig holds the geometry of the demo window.
type WindowConfig struct {
	X      int16  `yaml:"x"`
	Y      int16  `yaml:"y"`
	Width  uint16 `yaml:"width"`
	Height uint16 `yaml:"height"`
	Title  string `yaml:"title"`
}

var eventTypes = map[string]platform.EventType{
	"close":   platform.EventCloseRequested,
	"expose":  platform.EventExpose,
	"keydown": platform.EventKeyDown,
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Headless: HeadlessConfig{
			FontSize: 13,
		},
		Window: WindowConfig{
			X:      100,
			Y:      100,
			Width:  400,
			Height: 300,
			Title:  "wwind",
		},
	}
}

// Event converts the scripted entry to a backend event.
func (e EventConfig) Event() (platform.Event, error) {
	t, ok := eventTypes[e.Type]
	if !ok {
		return platform.Event{}, fmt.Errorf("unknown event type %q (expected close, expose or keydown)", e.Type)
	}
	return platform.Event{
		Type:   t,
		Window: platform.NativeWindow(e.Window),
		Region: platform.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height},
		Key:    platform.Key{Code: e.Code, Name: e.Key},
	}, nil
}

// PlatformOptions returns the backend factory options. The config must have
// passed Validate.
func (c *Config) PlatformOptions() platform.Options {
	events := make([]platform.Event, 0, len(c.Headless.Events))
	for _, e := range c.Headless.Events {
		ev, err := e.Event()
		if err != nil {
			continue
		}
		events = append(events, ev)
	}
	return platform.Options{
		Display: c.Display,
		Headless: platform.HeadlessOptions{
			OutputDir: c.Headless.OutputDir,
			FontSize:  c.Headless.FontSize,
			Events:    events,
		},
	}
}

func (c *Config) Validate() error {
	seen := make(map[platform.Kind]bool, len(c.Backends))
	for i, k := range c.Backends {
		if _, err := platform.ParseKind(string(k)); err != nil {
			return &ValidationError{Path: "backends", Err: fmt.Errorf("entry %d: %w", i, err)}
		}
		if seen[k] {
			return &ValidationError{Path: "backends", Err: fmt.Errorf("backend %q listed twice", k)}
		}
		seen[k] = true
	}

	if !logLevels[c.LogLevel] {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("must be one of debug, info, warn, error (got %q)", c.LogLevel)}
	}

	if c.Headless.FontSize <= 0 {
		return &ValidationError{Path: "headless.font_size", Err: fmt.Errorf("must be > 0")}
	}
	for i, e := range c.Headless.Events {
		if _, err := e.Event(); err != nil {
			return &ValidationError{Path: "headless.events", Err: fmt.Errorf("entry %d: %w", i, err)}
		}
		if e.Window == 0 {
			return &ValidationError{Path: "headless.events", Err: fmt.Errorf("entry %d: window must be >= 1", i)}
		}
	}

	if c.Window.Width == 0 {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("must be > 0")}
	}
	if c.Window.Height == 0 {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("must be > 0")}
	}
	return nil
}

// Save writes the configuration to path, creating parent directories.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
