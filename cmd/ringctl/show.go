// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/ringbuffer/cmd/ringctl/cli"
	"github.com/bureau-foundation/ringbuffer/lib/ringstore"
)

type showOptions struct {
	storeDir   string
	outputJSON bool
}

// showResult is the --json form of show.
type showResult struct {
	ringstore.Info
	Capacity int   `json:"capacity"`
	Elements []any `json:"elements"`
}

func (a *app) showCommand() *cli.Command {
	var options showOptions
	return &cli.Command{
		Name:    "show",
		Summary: "Render a stored snapshot",
		Description: `Load a snapshot, verify its digest, and draw the restored buffer as a
strip of slots. Unused capacity is drawn as a dot. Color is used when
stdout is a terminal, unless render.color in the config says otherwise.`,
		Usage: "ringctl show [flags] NAME",
		Examples: []cli.Example{
			{Description: "Render the snapshot named window", Command: "ringctl show window"},
			{Description: "Dump it as JSON", Command: "ringctl show --json window"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			storeFlag(flagSet, &options.storeDir)
			flagSet.BoolVar(&options.outputJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("show takes exactly one snapshot name, got %d arguments", len(args))
			}
			return a.show(args[0], options)
		},
	}
}

func (a *app) show(name string, options showOptions) error {
	store, err := a.openStore(options.storeDir)
	if err != nil {
		return err
	}
	buffer, info, err := ringstore.LoadBuffer[any](store, name)
	if err != nil {
		return storeError(err)
	}

	if options.outputJSON {
		return cli.WriteJSON(a.stdout, showResult{
			Info:     info,
			Capacity: buffer.Cap(),
			Elements: buffer.Elements(),
		})
	}

	styles := newStripStyles(a.stdout, a.config.Render.Color)
	fmt.Fprintln(a.stdout, styles.label.Render(info.Name))
	fmt.Fprintf(a.stdout, "  capacity %d   length %d   compression %s   digest %s   payload %d B   stored %d B\n",
		buffer.Cap(), buffer.Len(), info.Compression, info.Digest.Short(), info.Size, info.StoredSize)
	fmt.Fprintf(a.stdout, "  %s\n", renderStrip(styles, buffer))
	return nil
}
