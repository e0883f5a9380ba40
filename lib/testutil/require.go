// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireElements fails the test unless got holds exactly want, in
// order.
//
//	testutil.RequireElements(t, buffer.Elements(), []int{4, 5, 6}, "after wrap")
func RequireElements[T comparable](t TB, got []T, want []T, msgAndArgs ...any) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("%s: got %v, want %v", formatMessage(msgAndArgs), got, want)
	}
}

// RequireSeq collects seq and compares it like RequireElements.
func RequireSeq[T comparable](t TB, seq iter.Seq[T], want []T, msgAndArgs ...any) {
	t.Helper()
	RequireElements(t, slices.Collect(seq), want, msgAndArgs...)
}

// RequireErrorIs fails the test unless errors.Is(err, target).
//
//	testutil.RequireErrorIs(t, err, ring.ErrIndexOutOfRange, "At(%d)", index)
func RequireErrorIs(t TB, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("%s: got error %v, want %v", formatMessage(msgAndArgs), err, target)
	}
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
