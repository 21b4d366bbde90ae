// Package main provides the gofzf command-line interface:
// `gofzf <picker> key[=value]...` runs a builtin picker, and the hidden
// `headless` subcommand re-enters the binary for generated preview and
// source commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/patnr/gofzf/internal/capability"
	"github.com/patnr/gofzf/internal/config"
	"github.com/patnr/gofzf/internal/options"
	"github.com/patnr/gofzf/internal/picker"
	"github.com/patnr/gofzf/internal/session"
	"github.com/patnr/gofzf/internal/spawn"
	"github.com/patnr/gofzf/internal/window"

	_ "github.com/patnr/gofzf/internal/source/gitsrc"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "usage: gofzf <picker> [key[=value]...]\npickers: %s\n",
			strings.Join(picker.Names(), ", "))
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default configuration.")
		cfg = config.DefaultConfig()
	}

	ctx := context.Background()

	if argv[0] == "headless" {
		if err := runHeadless(ctx, argv[1:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	bag := ParseArgs(argv[1:])
	o := &options.Options{}
	if err := decodeOptions(bag, o); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	binary := cfg.Finder.Binary
	if name, _ := bag["finder"].(string); name == "sk" || name == "skim" {
		binary = cfg.Finder.SkimBinary
	}
	finder, err := capability.Detect(ctx, spawn.NewExecutor(cfg), binary)
	if err != nil {
		// Environment problem, not a bug: one line and a clean abort.
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	o.Finder = finder

	s := session.New(cfg, session.NewRegistry(), window.NewTermWindow(), session.NewLogNotifier())
	if err := picker.Run(ctx, argv[0], s, o); err != nil {
		var invalid interface{ InvalidInput() bool }
		if errors.As(err, &invalid) && invalid.InvalidInput() {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
