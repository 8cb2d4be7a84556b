package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	backends
//	display
//	log_level
//	headless.output_dir
//	headless.font_size
//	headless.events
//	window.x, window.y, window.width, window.height, window.title
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	switch len(parts) {
	case 1:
		switch parts[0] {
		case "backends":
			return cfg.Backends, nil
		case "display":
			return cfg.Display, nil
		case "log_level":
			return cfg.LogLevel, nil
		}
	case 2:
		switch parts[0] {
		case "headless":
			switch parts[1] {
			case "output_dir":
				return cfg.Headless.OutputDir, nil
			case "font_size":
				return cfg.Headless.FontSize, nil
			case "events":
				return cfg.Headless.Events, nil
			}
		case "window":
			switch parts[1] {
			case "x":
				return cfg.Window.X, nil
			case "y":
				return cfg.Window.Y, nil
			case "width":
				return cfg.Window.Width, nil
			case "height":
				return cfg.Window.Height, nil
			case "title":
				return cfg.Window.Title, nil
			}
		}
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}
