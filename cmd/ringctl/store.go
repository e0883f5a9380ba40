// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/ringbuffer/cmd/ringctl/cli"
)

type listOptions struct {
	storeDir   string
	outputJSON bool
}

func (a *app) listCommand() *cli.Command {
	var options listOptions
	return &cli.Command{
		Name:    "list",
		Summary: "List stored snapshots",
		Usage:   "ringctl list [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			storeFlag(flagSet, &options.storeDir)
			flagSet.BoolVar(&options.outputJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("list takes no positional arguments, got %q", args[0])
			}
			store, err := a.openStore(options.storeDir)
			if err != nil {
				return err
			}
			infos, err := store.List()
			if err != nil {
				return storeError(err)
			}
			if options.outputJSON {
				return cli.WriteJSON(a.stdout, infos)
			}
			if len(infos) == 0 {
				fmt.Fprintf(a.stdout, "no snapshots in %s\n", store.Directory())
				return nil
			}
			writer := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "NAME\tDIGEST\tCOMPRESSION\tPAYLOAD\tSTORED")
			for _, info := range infos {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%d\n",
					info.Name, info.Digest.Short(), info.Compression, info.Size, info.StoredSize)
			}
			return writer.Flush()
		},
	}
}

func (a *app) removeCommand() *cli.Command {
	var storeDir string
	return &cli.Command{
		Name:    "rm",
		Summary: "Delete stored snapshots",
		Usage:   "ringctl rm [flags] NAME...",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("rm", pflag.ContinueOnError)
			storeFlag(flagSet, &storeDir)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return cli.Validation("rm requires at least one snapshot name")
			}
			store, err := a.openStore(storeDir)
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := store.Delete(name); err != nil {
					return storeError(err)
				}
				fmt.Fprintf(a.stdout, "removed %s\n", name)
			}
			return nil
		},
	}
}
