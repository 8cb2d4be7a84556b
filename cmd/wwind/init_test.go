package main

import (
	"testing"

	"github.com/1broseidon/wwind/internal/config"
	"github.com/1broseidon/wwind/internal/platform"
)

func TestInitAnswersApply(t *testing.T) {
	cfg := config.DefaultConfig()
	a := answersFromConfig(cfg)
	a.Backends = []string{"xcb", "headless"}
	a.Display = " :3 "
	a.Width = "640"
	a.Height = "480"
	a.Title = "mine"

	if err := a.apply(cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(cfg.Backends) != 2 || cfg.Backends[0] != platform.KindXCB || cfg.Backends[1] != platform.KindHeadless {
		t.Fatalf("backends = %v", cfg.Backends)
	}
	if cfg.Display != ":3" || cfg.Window.Width != 640 || cfg.Window.Height != 480 || cfg.Window.Title != "mine" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestInitAnswersApplyRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*initAnswers)
	}{
		{"zero width", func(a *initAnswers) { a.Width = "0" }},
		{"text height", func(a *initAnswers) { a.Height = "tall" }},
		{"too wide", func(a *initAnswers) { a.Width = "70000" }},
		{"unknown backend", func(a *initAnswers) { a.Backends = []string{"wayland"} }},
		{"bad level", func(a *initAnswers) { a.LogLevel = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			a := answersFromConfig(cfg)
			tt.mutate(&a)
			if err := a.apply(cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseBackendList(t *testing.T) {
	got, err := parseBackendList("x11, xcb")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 || got[0] != platform.KindX11 || got[1] != platform.KindXCB {
		t.Fatalf("got %v", got)
	}
	if got, err := parseBackendList(""); err != nil || got != nil {
		t.Fatalf("empty list = %v, %v", got, err)
	}
	if _, err := parseBackendList("x11,mir"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
