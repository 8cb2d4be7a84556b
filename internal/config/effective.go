package config

import (
	"fmt"

	"github.com/1broseidon/wwind/internal/platform"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Backends != nil {
		cfg.Backends = make([]platform.Kind, 0, len(*raw.Backends))
		for _, name := range *raw.Backends {
			cfg.Backends = append(cfg.Backends, platform.Kind(name))
		}
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	if h := raw.Headless; h != nil {
		if h.OutputDir != nil {
			cfg.Headless.OutputDir = *h.OutputDir
		}
		if h.FontSize != nil {
			cfg.Headless.FontSize = *h.FontSize
		}
		if h.Events != nil {
			cfg.Headless.Events = append([]EventConfig(nil), (*h.Events)...)
		}
	}

	if w := raw.Window; w != nil {
		if w.X != nil {
			cfg.Window.X = *w.X
		}
		if w.Y != nil {
			cfg.Window.Y = *w.Y
		}
		if w.Width != nil {
			cfg.Window.Width = *w.Width
		}
		if w.Height != nil {
			cfg.Window.Height = *w.Height
		}
		if w.Title != nil {
			cfg.Window.Title = *w.Title
		}
	}

	return cfg, nil
}
