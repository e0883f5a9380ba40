// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// ringctl drives fixed-capacity ring buffers from the command line:
// it replays operation scripts against a buffer, stores the result as
// a compressed, digest-verified snapshot, and renders, lists, and
// inspects stored snapshots. It also carries a timing harness for the
// ring-backed suffix and drop-last sequence helpers.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/ringbuffer/cmd/ringctl/cli"
	"github.com/bureau-foundation/ringbuffer/lib/clock"
	"github.com/bureau-foundation/ringbuffer/lib/config"
	"github.com/bureau-foundation/ringbuffer/lib/ringstore"
	"github.com/bureau-foundation/ringbuffer/lib/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var exitError *cli.ExitError
		if !errors.As(err, &exitError) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

// globalOptions are the flags accepted before the subcommand name.
type globalOptions struct {
	configPath  string
	verbose     bool
	showVersion bool
}

func globalFlags(options *globalOptions) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("ringctl", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&options.configPath, "config", "", "path to ringctl.yaml (default: $"+config.EnvironmentVariable+")")
	flagSet.BoolVarP(&options.verbose, "verbose", "v", false, "log debug records to stderr")
	flagSet.BoolVar(&options.showVersion, "version", false, "print version information and exit")
	return flagSet
}

// app is the state shared by every subcommand.
type app struct {
	config *config.Config
	logger *slog.Logger
	stdout io.Writer
	clock  clock.Clock
}

func run(args []string, stdout, stderr io.Writer) error {
	var options globalOptions
	flagSet := globalFlags(&options)
	flagSet.SetOutput(io.Discard)

	root := rootCommand(nil)
	root.HelpOutput = stderr

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			root.PrintHelp(stderr)
			return nil
		}
		return cli.Validation("%v\n\nRun 'ringctl --help' for usage.", err)
	}

	if options.showVersion {
		printVersion(stdout, version.Current())
		return nil
	}

	cfg, err := loadConfig(options.configPath)
	if err != nil {
		return err
	}

	application := &app{
		config: cfg,
		logger: cli.NewLogger(stderr, options.verbose),
		stdout: stdout,
		clock:  clock.Real(),
	}
	application.logger.Debug("configuration loaded",
		"environment", cfg.Environment,
		"store", cfg.Store.Directory,
		"compression", cfg.Store.Compression,
	)

	root = rootCommand(application)
	root.HelpOutput = stderr
	return root.Execute(flagSet.Args())
}

// loadConfig reads the file named by --config, else the file named by
// RINGCTL_CONFIG, else falls back to the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, cli.Validation("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err)
	}
	return cfg, nil
}

// rootCommand builds the command tree. application may be nil when the
// tree is only used to print help.
func rootCommand(application *app) *cli.Command {
	if application == nil {
		application = &app{config: config.Default()}
	}
	return &cli.Command{
		Name:        "ringctl",
		Summary:     "Replay, store, and inspect ring buffers",
		Description: "ringctl replays operation scripts against fixed-capacity ring buffers and\nmanages the compressed snapshots they produce.",
		Usage:       "ringctl [--config PATH] [--verbose] <command> [flags]",
		Flags: func() *pflag.FlagSet {
			return globalFlags(&globalOptions{})
		},
		Subcommands: []*cli.Command{
			application.replayCommand(),
			application.showCommand(),
			application.listCommand(),
			application.removeCommand(),
			application.diagCommand(),
			application.benchCommand(),
		},
	}
}

// openStore opens the snapshot store, in directory if given or the
// configured directory otherwise.
func (a *app) openStore(directory string) (*ringstore.Store, error) {
	if directory == "" {
		directory = a.config.Store.Directory
	}
	store, err := ringstore.Open(directory, ringstore.Options{
		Compression: a.config.Compression(),
		Logger:      a.logger,
	})
	if err != nil {
		return nil, cli.Internal("opening snapshot store: %w", err)
	}
	return store, nil
}

func printVersion(w io.Writer, build version.Build) {
	fmt.Fprintf(w, "ringctl %s\n", build)
	fmt.Fprintf(w, "  go:              %s %s\n", build.GoVersion, build.Platform)
	fmt.Fprintf(w, "  snapshot format: %d\n", ringstore.FormatVersion)
}

// storeError classifies an error from the snapshot store.
func storeError(err error) error {
	switch {
	case errors.Is(err, ringstore.ErrNotFound):
		return cli.NotFound("%w", err).WithHint("Run 'ringctl list' to see stored snapshots.")
	case errors.Is(err, ringstore.ErrInvalidName):
		return cli.Validation("%w", err)
	default:
		return cli.Internal("%w", err)
	}
}

func storeFlag(flagSet *pflag.FlagSet, target *string) {
	flagSet.StringVar(target, "store", "", "snapshot directory (default: store.directory from config)")
}
