// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ring

import (
	"fmt"
	"slices"
)

// Snapshot is the serializable form of a Buffer: its capacity and its
// elements in logical order. The wrap offset is not preserved;
// restoring a snapshot always yields an unwrapped buffer with the same
// logical contents.
type Snapshot[T any] struct {
	Capacity int `cbor:"capacity"`
	Elements []T `cbor:"elements"`
}

// Snapshot captures the buffer's current contents.
func (b *Buffer[T]) Snapshot() Snapshot[T] {
	return Snapshot[T]{Capacity: b.Cap(), Elements: b.Elements()}
}

// Restore builds a buffer from a snapshot. A snapshot with more
// elements than its capacity is rejected with [ErrCapacityExceeded].
func Restore[T any](snapshot Snapshot[T]) (*Buffer[T], error) {
	buffer, err := From(slices.Values(snapshot.Elements), snapshot.Capacity)
	if err != nil {
		return nil, fmt.Errorf("restoring snapshot: %w", err)
	}
	return buffer, nil
}
