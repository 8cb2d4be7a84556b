package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	out, err := stringOrList(value, "include")
	if err != nil {
		return err
	}
	*l = out
	return nil
}

// BackendList accepts a single backend name or a list of them.
type BackendList []string

func (l *BackendList) UnmarshalYAML(value *yaml.Node) error {
	out, err := stringOrList(value, "backends")
	if err != nil {
		return err
	}
	*l = out
	return nil
}

func stringOrList(value *yaml.Node, key string) ([]string, error) {
	switch value.Kind {
	case 0:
		// Not present.
		return nil, nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return nil, fmt.Errorf("%s must be a string or list of strings", key)
		}
		return []string{value.Value}, nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return nil, fmt.Errorf("%s entries must be strings", key)
			}
			out = append(out, item.Value)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a string or list of strings", key)
	}
}

// RawConfig mirrors one YAML file; nil fields were not set in that file.
type RawConfig struct {
	Include  IncludeList        `yaml:"include"`
	Backends *BackendList       `yaml:"backends"`
	Display  *string            `yaml:"display"`
	LogLevel *string            `yaml:"log_level"`
	Headless *RawHeadlessConfig `yaml:"headless"`
	Window   *RawWindowConfig   `yaml:"window"`
}

type RawHeadlessConfig struct {
	OutputDir *string        `yaml:"output_dir"`
	FontSize  *float64       `yaml:"font_size"`
	Events    *[]EventConfig `yaml:"events"`
}

type RawWindowConfig struct {
	X      *int16  `yaml:"x"`
	Y      *int16  `yaml:"y"`
	Width  *uint16 `yaml:"width"`
	Height *uint16 `yaml:"height"`
	Title  *string `yaml:"title"`
}

// merge overlays other on top of r. Lists are replaced, not appended.
func (r RawConfig) merge(other RawConfig) RawConfig {
	out := r
	out.Include = nil
	if other.Backends != nil {
		out.Backends = other.Backends
	}
	if other.Display != nil {
		out.Display = other.Display
	}
	if other.LogLevel != nil {
		out.LogLevel = other.LogLevel
	}
	if other.Headless != nil {
		out.Headless = mergeHeadless(out.Headless, other.Headless)
	}
	if other.Window != nil {
		out.Window = mergeWindow(out.Window, other.Window)
	}
	return out
}

func mergeHeadless(base, overlay *RawHeadlessConfig) *RawHeadlessConfig {
	out := RawHeadlessConfig{}
	if base != nil {
		out = *base
	}
	if overlay.OutputDir != nil {
		out.OutputDir = overlay.OutputDir
	}
	if overlay.FontSize != nil {
		out.FontSize = overlay.FontSize
	}
	if overlay.Events != nil {
		out.Events = overlay.Events
	}
	return &out
}

func mergeWindow(base, overlay *RawWindowConfig) *RawWindowConfig {
	out := RawWindowConfig{}
	if base != nil {
		out = *base
	}
	if overlay.X != nil {
		out.X = overlay.X
	}
	if overlay.Y != nil {
		out.Y = overlay.Y
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.Title != nil {
		out.Title = overlay.Title
	}
	return &out
}
