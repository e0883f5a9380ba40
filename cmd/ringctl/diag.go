// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/ringbuffer/cmd/ringctl/cli"
	"github.com/bureau-foundation/ringbuffer/lib/codec"
)

func (a *app) diagCommand() *cli.Command {
	var storeDir string
	return &cli.Command{
		Name:    "diag",
		Summary: "Print a snapshot in CBOR diagnostic notation",
		Description: `Load a snapshot, verify its digest, and write its decompressed CBOR
payload as RFC 8949 diagnostic notation. This shows the exact wire form
of the snapshot: a map of capacity and the elements in logical order.`,
		Usage: "ringctl diag [flags] NAME",
		Examples: []cli.Example{
			{Description: "Inspect the wire form of a snapshot", Command: "ringctl diag window"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("diag", pflag.ContinueOnError)
			storeFlag(flagSet, &storeDir)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("diag takes exactly one snapshot name, got %d arguments", len(args))
			}
			store, err := a.openStore(storeDir)
			if err != nil {
				return err
			}
			payload, _, err := store.Load(args[0])
			if err != nil {
				return storeError(err)
			}
			return diagCBOR(payload, a.stdout)
		},
	}
}

// diagCBOR writes each item of a CBOR sequence in data as diagnostic
// notation, one item per line.
func diagCBOR(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return cli.Validation("empty snapshot payload")
	}
	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := codec.DiagnoseFirst(remaining)
		if err != nil {
			offset := len(data) - len(remaining)
			return cli.Internal("diagnose CBOR at byte %d: %w", offset, err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}
