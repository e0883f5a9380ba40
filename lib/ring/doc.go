// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ring provides a fixed-capacity circular sequence with
// copy-on-write value semantics.
//
// A [Buffer] behaves like a random-access, range-replaceable slice
// whose capacity never changes. Appending to a full buffer silently
// evicts the oldest element, which is the defining ring buffer
// behavior: after appending 1 through 6 into a buffer of capacity 3,
// the logical contents are [4, 5, 6].
//
// # Storage
//
// Each Buffer is a handle onto a storage block: a slot array of
// exactly Cap() elements, a logical count, and a wrap offset naming
// the physical slot of logical position 0. A partially filled block is
// never wrapped. Wrapping begins only when an append overwrites the
// oldest element of a full block. Logical position i lives at physical
// slot (offset + i) mod capacity.
//
// Replace and Remove run in O(1) auxiliary memory. Replacement
// sequences are consumed lazily; when more replacement elements are
// supplied than fit, the leading ones are skipped so the newest data
// survives, matching eviction order. Replacement never evicts
// elements outside the replaced range: capacity 3 holding [1, 2] with
// [2, 2) replaced by [9, 10, 11] yields [1, 2, 11]. Removing from a
// wrapped block rotates it back to offset zero.
//
// # Sharing
//
// [Buffer.Clone] returns a second handle onto the same storage without
// copying elements. Storage tracks how many handles are bound to it;
// the first mutation through a handle whose storage is shared copies
// the logical contents into a fresh, unwrapped block first, so no
// mutation is ever observable through another handle. Reads never
// copy. A handle that becomes unreachable gives up its share
// automatically; [Buffer.Release] does so eagerly.
//
// Buffers are not safe for concurrent mutation. The sharing check and
// the copy it may trigger are one critical section that callers must
// synchronize if a handle is used from more than one goroutine.
// Mutating a buffer while ranging over it is undefined.
//
// # Errors
//
// Every operation validates its arguments before mutating or copying,
// so a failed call leaves the buffer unchanged. Failures wrap one of
// the sentinel errors ([ErrInvalidCapacity], [ErrIndexOutOfRange],
// [ErrRangeOutOfBounds], ...) and are matched with errors.Is.
// Eviction on Append is designed behavior and is never an error.
//
// [Suffix] and [DropLast] use the same storage to take the tail of, or
// drop the tail from, an arbitrary sequence in memory bounded by the
// tail length.
package ring
