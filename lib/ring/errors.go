// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ring

import "errors"

var (
	// ErrInvalidCapacity is returned when a buffer is constructed with
	// a capacity below one.
	ErrInvalidCapacity = errors.New("ring: capacity must be at least 1")

	// ErrCapacityExceeded is returned when an initial sequence holds
	// more elements than the requested capacity. Construction rejects
	// the sequence instead of truncating it.
	ErrCapacityExceeded = errors.New("ring: initial sequence exceeds capacity")

	// ErrInvalidOffset is returned when a wrap offset lies outside
	// [0, capacity) or is non-zero for a partially filled buffer.
	ErrInvalidOffset = errors.New("ring: invalid wrap offset")

	// ErrIndexOutOfRange is returned by single-element access outside
	// [0, Len()).
	ErrIndexOutOfRange = errors.New("ring: index out of range")

	// ErrRangeOutOfBounds is returned by ranged access whose bounds
	// fall outside [0, Len()] or are inverted.
	ErrRangeOutOfBounds = errors.New("ring: range out of bounds")

	// ErrGrowthOnWrappedBuffer is returned when a replacement would
	// grow a wrapped buffer. A wrapped buffer is always full, so the
	// capacity clamp normally rules this out.
	ErrGrowthOnWrappedBuffer = errors.New("ring: cannot grow a wrapped buffer")
)
