package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/wwind/internal/config"
	"github.com/1broseidon/wwind/internal/platform"
)

// initAnswers holds the form fields as typed by the user.
type initAnswers struct {
	Backends []string
	Display  string
	LogLevel string
	Width    string
	Height   string
	Title    string
}

func answersFromConfig(cfg *config.Config) initAnswers {
	a := initAnswers{
		Display:  cfg.Display,
		LogLevel: cfg.LogLevel,
		Width:    strconv.Itoa(int(cfg.Window.Width)),
		Height:   strconv.Itoa(int(cfg.Window.Height)),
		Title:    cfg.Window.Title,
	}
	for _, k := range cfg.Backends {
		a.Backends = append(a.Backends, string(k))
	}
	return a
}

func validateDimension(s string) error {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil || n == 0 {
		return fmt.Errorf("enter a number between 1 and 65535")
	}
	return nil
}

// apply copies the answers into cfg and validates the result.
func (a initAnswers) apply(cfg *config.Config) error {
	cfg.Backends = cfg.Backends[:0]
	for _, name := range a.Backends {
		k, err := platform.ParseKind(name)
		if err != nil {
			return err
		}
		cfg.Backends = append(cfg.Backends, k)
	}
	cfg.Display = strings.TrimSpace(a.Display)
	cfg.LogLevel = a.LogLevel
	cfg.Window.Title = a.Title

	for _, dim := range []struct {
		name string
		in   string
		out  *uint16
	}{
		{"width", a.Width, &cfg.Window.Width},
		{"height", a.Height, &cfg.Window.Height},
	} {
		if err := validateDimension(dim.in); err != nil {
			return fmt.Errorf("window %s: %w", dim.name, err)
		}
		n, _ := strconv.ParseUint(strings.TrimSpace(dim.in), 10, 16)
		*dim.out = uint16(n)
	}
	return cfg.Validate()
}

func (a *initAnswers) form() *huh.Form {
	backendOpts := make([]huh.Option[string], 0, len(platform.Available()))
	for _, k := range platform.Available() {
		backendOpts = append(backendOpts, huh.NewOption(string(k), string(k)))
	}
	levelOpts := []huh.Option[string]{
		huh.NewOption("debug", "debug"),
		huh.NewOption("info", "info"),
		huh.NewOption("warn", "warn"),
		huh.NewOption("error", "error"),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("backends").
				Title("Backends").
				Description("Backends to try; none selected means the platform default").
				Options(backendOpts...).
				Value(&a.Backends),

			huh.NewInput().
				Key("display").
				Title("X Display").
				Description("Empty uses $DISPLAY").
				Value(&a.Display),

			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(levelOpts...).
				Value(&a.LogLevel),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("width").
				Title("Demo Window Width").
				Validate(validateDimension).
				Value(&a.Width),
			huh.NewInput().
				Key("height").
				Title("Demo Window Height").
				Validate(validateDimension).
				Value(&a.Height),
			huh.NewInput().
				Key("title").
				Title("Demo Window Title").
				Value(&a.Title),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wwind/config.yaml)")
	force := fs.Bool("force", false, "Overwrite an existing file")
	defaults := fs.Bool("defaults", false, "Write defaults without asking")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	target := *path
	if target == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		target = p
	}
	if _, err := os.Stat(target); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "%s already exists (use --force to overwrite)\n", target)
		return 1
	}

	cfg := config.DefaultConfig()
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive && !*defaults {
		answers := answersFromConfig(cfg)
		if err := answers.form().Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(os.Stderr, "aborted")
				return 1
			}
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := answers.apply(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if err := cfg.Save(target); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("wrote %s\n", target)
	return 0
}
