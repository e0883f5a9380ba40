// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/ringbuffer/cmd/ringctl/cli"
	"github.com/bureau-foundation/ringbuffer/lib/ring"
	"github.com/bureau-foundation/ringbuffer/lib/ringstore"
)

type replayOptions struct {
	capacity  int
	storeDir  string
	saveName  string
	showStrip bool
}

func (a *app) replayCommand() *cli.Command {
	var options replayOptions
	return &cli.Command{
		Name:    "replay",
		Summary: "Apply an operation script to a buffer",
		Description: `Apply the steps of a JSONC or YAML script to an empty int64 buffer and
print the buffer after each step, once in logical order and once in the
debug form that shows capacity and the wrap point.

Supported ops: append, insert, replace, remove, remove_all, set.
The first failing step stops the replay.`,
		Usage: "ringctl replay [flags] SCRIPT",
		Examples: []cli.Example{
			{
				Description: "Replay a script into a buffer of capacity 4",
				Command:     "ringctl replay --capacity 4 steps.jsonc",
			},
			{
				Description: "Replay and keep the result as a snapshot",
				Command:     "ringctl replay --save window steps.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("replay", pflag.ContinueOnError)
			flagSet.IntVar(&options.capacity, "capacity", 0, "buffer capacity (default: script capacity, then ring.default_capacity)")
			storeFlag(flagSet, &options.storeDir)
			flagSet.StringVar(&options.saveName, "save", "", "save the final buffer as a snapshot with this name")
			flagSet.BoolVar(&options.showStrip, "strip", false, "also draw the slot strip after each step")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("replay takes exactly one script path, got %d arguments", len(args))
			}
			return a.replay(args[0], options)
		},
	}
}

func (a *app) replay(path string, options replayOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cli.NotFound("script %s does not exist", path)
		}
		return cli.Internal("reading script: %w", err)
	}
	script, err := parseScript(path, data)
	if err != nil {
		return cli.Validation("%w", err)
	}

	if options.saveName != "" {
		if err := ringstore.ValidateName(options.saveName); err != nil {
			return cli.Validation("--save: %w", err)
		}
	}

	capacity := a.config.Ring.DefaultCapacity
	if script.Capacity > 0 {
		capacity = script.Capacity
	}
	if options.capacity != 0 {
		capacity = options.capacity
	}

	buffer, err := ring.New[int64](capacity)
	if err != nil {
		return cli.Validation("%w", err)
	}

	styles := newStripStyles(a.stdout, a.config.Render.Color)
	a.logger.Debug("replaying script", "path", path, "capacity", capacity, "steps", len(script.Steps))

	fmt.Fprintf(a.stdout, "#0 new buffer, capacity %d\n", capacity)
	printState(a.stdout, styles, buffer, options.showStrip)
	for index, step := range script.Steps {
		fmt.Fprintf(a.stdout, "#%d %s\n", index+1, step)
		if err := step.apply(buffer); err != nil {
			return cli.Validation("step %d (%s): %w", index+1, step, err)
		}
		printState(a.stdout, styles, buffer, options.showStrip)
	}

	if options.saveName == "" {
		return nil
	}
	store, err := a.openStore(options.storeDir)
	if err != nil {
		return err
	}
	info, err := ringstore.SaveBuffer(store, options.saveName, buffer)
	if err != nil {
		return storeError(err)
	}
	fmt.Fprintf(a.stdout, "saved %s (%s, %s, %d bytes)\n", info.Name, info.Digest.Short(), info.Compression, info.StoredSize)
	return nil
}

func printState(w io.Writer, styles stripStyles, buffer *ring.Buffer[int64], showStrip bool) {
	fmt.Fprintf(w, "   %s\n", buffer)
	fmt.Fprintf(w, "   %#v\n", buffer)
	if showStrip {
		fmt.Fprintf(w, "   %s\n", renderStrip(styles, buffer))
	}
}
