// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"iter"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/ringbuffer/cmd/ringctl/cli"
	"github.com/bureau-foundation/ringbuffer/lib/clock"
	"github.com/bureau-foundation/ringbuffer/lib/config"
	"github.com/bureau-foundation/ringbuffer/lib/ring"
)

// benchResult is the timing of one workload.
type benchResult struct {
	Name       string        `json:"name"`
	Iterations int           `json:"iterations"`
	Total      time.Duration `json:"total_ns"`
	PerOp      time.Duration `json:"per_op_ns"`
}

// workload is one timed operation. run returns an error when the
// result does not match the expected shape.
type workload struct {
	name string
	run  func() error
}

func (a *app) benchCommand() *cli.Command {
	var (
		parameters config.BenchConfig
		outputJSON bool
	)
	return &cli.Command{
		Name:    "bench",
		Summary: "Time the ring-backed suffix and drop-last helpers",
		Description: `Run Suffix and DropLast over a slice-backed sequence and over an opaque
generator, each for a number of iterations, and report the total and
per-iteration time. Every iteration checks its result.

Defaults come from the bench section of the config: 4096 elements with
a window of 1024.`,
		Usage: "ringctl bench [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("bench", pflag.ContinueOnError)
			flagSet.IntVar(&parameters.Iterations, "iterations", a.config.Bench.Iterations, "iterations per workload")
			flagSet.IntVar(&parameters.Elements, "elements", a.config.Bench.Elements, "sequence length")
			flagSet.IntVar(&parameters.Window, "window", a.config.Bench.Window, "suffix length and drop-last count")
			flagSet.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("bench takes no positional arguments, got %q", args[0])
			}
			results, err := runBench(a.clock, parameters)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(a.stdout, results)
			}
			writer := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "WORKLOAD\tITERATIONS\tTOTAL\tPER OP")
			for _, result := range results {
				fmt.Fprintf(writer, "%s\t%d\t%s\t%s\n", result.Name, result.Iterations, result.Total, result.PerOp)
			}
			return writer.Flush()
		},
	}
}

// runBench times every workload for parameters.Iterations runs.
func runBench(timer clock.Clock, parameters config.BenchConfig) ([]benchResult, error) {
	if parameters.Elements < 1 || parameters.Window < 1 || parameters.Window > parameters.Elements {
		return nil, cli.Validation("bench needs 1 <= window <= elements, got window %d and elements %d",
			parameters.Window, parameters.Elements)
	}
	if parameters.Iterations < 1 {
		return nil, cli.Validation("bench needs at least one iteration, got %d", parameters.Iterations)
	}

	var results []benchResult
	for _, item := range benchWorkloads(parameters.Elements, parameters.Window) {
		start := timer.Now()
		for range parameters.Iterations {
			if err := item.run(); err != nil {
				return nil, cli.Internal("%s: %w", item.name, err)
			}
		}
		total := timer.Since(start)
		results = append(results, benchResult{
			Name:       item.name,
			Iterations: parameters.Iterations,
			Total:      total,
			PerOp:      total / time.Duration(parameters.Iterations),
		})
	}
	return results, nil
}

// benchWorkloads returns the suffix and drop-last workloads over a
// slice of elements values and over a generator of the same values.
func benchWorkloads(elements, window int) []workload {
	data := make([]int, elements)
	for index := range data {
		data[index] = index
	}
	sources := []struct {
		name string
		seq  func() iter.Seq[int]
	}{
		{"slice", func() iter.Seq[int] { return slices.Values(data) }},
		{"sequence", func() iter.Seq[int] { return counting(elements) }},
	}

	var workloads []workload
	for _, source := range sources {
		workloads = append(workloads, workload{
			name: "suffix/" + source.name,
			run: func() error {
				suffix := ring.Suffix(source.seq(), window)
				if len(suffix) != window || suffix[0] != elements-window || suffix[window-1] != elements-1 {
					return fmt.Errorf("unexpected suffix of length %d", len(suffix))
				}
				return nil
			},
		})
	}
	for _, source := range sources {
		workloads = append(workloads, workload{
			name: "drop-last/" + source.name,
			run: func() error {
				count, last := 0, -1
				for value := range ring.DropLast(source.seq(), window) {
					count++
					last = value
				}
				if count != elements-window || last != elements-window-1 {
					return fmt.Errorf("drop-last yielded %d elements ending at %d", count, last)
				}
				return nil
			},
		})
	}
	return workloads
}

// counting yields 0 through n-1 without a backing slice.
func counting(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for value := range n {
			if !yield(value) {
				return
			}
		}
	}
}
