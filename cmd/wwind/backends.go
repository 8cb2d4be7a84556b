package main

import (
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/1broseidon/wwind"
	"github.com/1broseidon/wwind/internal/platform"
)

func runBackends(args []string) int {
	fs := flag.NewFlagSet("backends", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wwind/config.yaml)")
	probe := fs.Bool("probe", false, "Try to connect to each backend")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wwind backends [--path PATH] [--probe]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List compiled-in backends in preference order.")
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

	order := cfg.Backends
	source := "config"
	if len(order) == 0 {
		order = platform.DefaultOrder()
		source = "platform default"
	}
	fmt.Printf("preference (%s):", source)
	for _, k := range order {
		fmt.Printf(" %s", k)
	}
	fmt.Println()

	for _, k := range platform.Available() {
		mark := " "
		if slices.Contains(order, k) {
			mark = "*"
		}
		if !*probe {
			fmt.Printf("%s %s\n", mark, k)
			continue
		}
		s, err := wwind.New(wwind.WithConfig(cfg), wwind.WithBackends(k))
		if err != nil {
			fmt.Printf("%s %-9s unavailable: %v\n", mark, k, err)
			continue
		}
		status := "ok"
		if displays, err := s.Displays(); err == nil {
			status = fmt.Sprintf("ok, %d display(s)", len(displays))
		}
		if err := s.Close(); err != nil {
			status += fmt.Sprintf(" (close: %v)", err)
		}
		fmt.Printf("%s %-9s %s\n", mark, k, status)
	}
	return 0
}
