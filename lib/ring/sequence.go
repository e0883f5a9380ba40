// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ring

import "iter"

// Suffix returns the last count elements of seq, oldest first, or all
// of them if seq is shorter. Memory is bounded by count regardless of
// the length of seq.
func Suffix[T any](seq iter.Seq[T], count int) []T {
	if count <= 0 {
		return []T{}
	}
	window := &storage[T]{slots: make([]T, count)}
	for value := range seq {
		window.append(value)
	}
	first, second := window.segments()
	result := make([]T, 0, window.count)
	result = append(result, first...)
	return append(result, second...)
}

// DropLast returns a sequence yielding every element of seq except the
// last count. Elements are delayed by count positions through a ring
// of that capacity, so seq is consumed lazily and never buffered in
// full.
func DropLast[T any](seq iter.Seq[T], count int) iter.Seq[T] {
	if count <= 0 {
		return seq
	}
	return func(yield func(T) bool) {
		window := &storage[T]{slots: make([]T, count)}
		for value := range seq {
			if window.count < count {
				window.append(value)
				continue
			}
			oldest := window.slots[window.offset]
			window.append(value)
			if !yield(oldest) {
				return
			}
		}
	}
}
