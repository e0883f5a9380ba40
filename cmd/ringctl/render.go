// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/ringbuffer/cmd/ringctl/cli"
	"github.com/bureau-foundation/ringbuffer/lib/config"
	"github.com/bureau-foundation/ringbuffer/lib/ring"
)

// freeSlot marks unused capacity in a rendered strip.
const freeSlot = "·"

// colorProfile picks the termenv profile for w under mode. Auto
// detects from the terminal and honors NO_COLOR; anything that is not
// a terminal gets plain text.
func colorProfile(w io.Writer, mode config.ColorMode) termenv.Profile {
	switch mode {
	case config.ColorAlways:
		return termenv.ANSI256
	case config.ColorNever:
		return termenv.Ascii
	}
	if !cli.IsTerminal(w) {
		return termenv.Ascii
	}
	return termenv.NewOutput(w.(*os.File)).EnvColorProfile()
}

// stripStyles renders the cells of a buffer strip.
type stripStyles struct {
	head      lipgloss.Style
	tail      lipgloss.Style
	free      lipgloss.Style
	separator lipgloss.Style
	label     lipgloss.Style
}

func newStripStyles(w io.Writer, mode config.ColorMode) stripStyles {
	profile := colorProfile(w, mode)
	// SetColorProfile is needed as well: the renderer re-detects from
	// the environment unless the profile is set explicitly.
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	return stripStyles{
		head:      renderer.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		tail:      renderer.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
		free:      renderer.NewStyle().Foreground(lipgloss.Color("240")),
		separator: renderer.NewStyle().Foreground(lipgloss.Color("240")),
		label:     renderer.NewStyle().Bold(true),
	}
}

// renderStrip draws every slot of buffer in logical order: the head
// run, a separator and the tail run when the buffer has wrapped, then
// one marker per free slot. Cells share the width of the widest value.
func renderStrip[T any](styles stripStyles, buffer *ring.Buffer[T]) string {
	head, tail := buffer.Segments()
	headCells := formatCells(head)
	tailCells := formatCells(tail)

	width := ansi.StringWidth(freeSlot)
	for _, cell := range append(headCells, tailCells...) {
		width = max(width, ansi.StringWidth(cell))
	}

	var parts []string
	for _, cell := range headCells {
		parts = append(parts, styles.head.Width(width).Align(lipgloss.Right).Render(cell))
	}
	if len(tailCells) > 0 {
		parts = append(parts, styles.separator.Render("│"))
		for _, cell := range tailCells {
			parts = append(parts, styles.tail.Width(width).Align(lipgloss.Right).Render(cell))
		}
	}
	for range buffer.Cap() - buffer.Len() {
		parts = append(parts, styles.free.Width(width).Align(lipgloss.Right).Render(freeSlot))
	}
	return strings.Join(parts, " ")
}

func formatCells[T any](values []T) []string {
	cells := make([]string, len(values))
	for index, value := range values {
		cells[index] = fmt.Sprint(value)
	}
	return cells
}
