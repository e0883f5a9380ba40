// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ring

import (
	"iter"
	"runtime"
	"slices"
)

// Buffer is a handle onto fixed-capacity ring storage. Handles made
// with [Buffer.Clone] share storage until one of them mutates, at
// which point the mutating handle copies the contents into storage of
// its own.
//
// Construct Buffers with [New], [From], [Of], or [Restore]; the zero
// value is not usable. A Buffer must not be used after [Buffer.Release].
type Buffer[T any] struct {
	binding *binding[T]
}

// binding is the part of a Buffer that its cleanup can reach. It must
// not point back at the Buffer, or the cleanup would never run.
type binding[T any] struct {
	storage *storage[T]
}

func (b *binding[T]) release() {
	if b.storage == nil {
		return
	}
	b.storage.owners.Add(-1)
	b.storage = nil
}

// bind creates a handle owning a share of block.
func bind[T any](block *storage[T]) *Buffer[T] {
	block.owners.Add(1)
	buffer := &Buffer[T]{binding: &binding[T]{storage: block}}
	runtime.AddCleanup(buffer, (*binding[T]).release, buffer.binding)
	return buffer
}

// New returns an empty buffer that holds at most capacity elements.
func New[T any](capacity int) (*Buffer[T], error) {
	block, err := newStorage[T](capacity)
	if err != nil {
		return nil, err
	}
	return bind(block), nil
}

// From returns a buffer of the given capacity holding the elements of
// seq in order. A sequence with more than capacity elements is
// rejected with [ErrCapacityExceeded] rather than truncated.
func From[T any](seq iter.Seq[T], capacity int) (*Buffer[T], error) {
	block, err := newStorageFrom(seq, capacity, 0)
	if err != nil {
		return nil, err
	}
	return bind(block), nil
}

// Of returns a full buffer holding values, with capacity equal to the
// number of values. With no values the capacity is 1.
func Of[T any](values ...T) *Buffer[T] {
	block := &storage[T]{slots: make([]T, max(1, len(values))), count: len(values)}
	copy(block.slots, values)
	return bind(block)
}

func (b *Buffer[T]) block() *storage[T] {
	return b.binding.storage
}

// mutableStorage returns storage this handle owns alone, copying the
// shared storage first when other handles are bound to it.
func (b *Buffer[T]) mutableStorage() *storage[T] {
	current := b.binding.storage
	if current.owners.Load() <= 1 {
		return current
	}
	private := current.clone()
	private.owners.Add(1)
	current.owners.Add(-1)
	b.binding.storage = private
	return private
}

// Clone returns a new handle sharing this buffer's storage. No
// elements are copied until one of the handles mutates.
func (b *Buffer[T]) Clone() *Buffer[T] {
	return bind(b.block())
}

// Release gives up this handle's share of its storage so that the
// remaining handles can mutate without copying. Handles release
// automatically when they become unreachable; Release makes it
// immediate. Releasing twice is harmless.
func (b *Buffer[T]) Release() {
	b.binding.release()
}

// Shared reports whether another handle is bound to the same storage,
// meaning the next mutation through b will copy.
func (b *Buffer[T]) Shared() bool {
	return b.block().owners.Load() > 1
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int { return b.block().count }

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return b.block().capacity() }

// IsEmpty reports whether the buffer holds no elements.
func (b *Buffer[T]) IsEmpty() bool { return b.block().count == 0 }

// IsFull reports whether the next Append will evict the oldest element.
func (b *Buffer[T]) IsFull() bool {
	block := b.block()
	return block.count == block.capacity()
}

// ReserveCapacity does nothing. Capacity is fixed at construction.
func (b *Buffer[T]) ReserveCapacity(int) {}

// At returns the element at logical position index.
func (b *Buffer[T]) At(index int) (T, error) {
	return b.block().at(index)
}

// Set replaces the element at logical position index.
func (b *Buffer[T]) Set(index int, value T) error {
	if err := checkIndex(index, b.Len()); err != nil {
		return err
	}
	return b.mutableStorage().set(index, value)
}

// Slice returns a copy of the elements in [low, high).
func (b *Buffer[T]) Slice(low, high int) ([]T, error) {
	return b.block().slice(low, high)
}

// Elements returns a copy of all elements in logical order.
func (b *Buffer[T]) Elements() []T {
	block := b.block()
	elements, _ := block.slice(0, block.count)
	return elements
}

// Segments returns copies of the two physical runs that hold the
// elements, oldest first. tail is empty unless the buffer has wrapped;
// head followed by tail equals Elements().
func (b *Buffer[T]) Segments() (head, tail []T) {
	first, second := b.block().segments()
	return slices.Clone(first), slices.Clone(second)
}

// SetSlice assigns values to the range [low, high). It is Replace
// under the name of a ranged assignment.
func (b *Buffer[T]) SetSlice(low, high int, values []T) error {
	return b.Replace(low, high, values...)
}

// Append adds values after the newest element, evicting the oldest
// elements once the buffer is full.
func (b *Buffer[T]) Append(values ...T) {
	if len(values) == 0 {
		return
	}
	target := b.mutableStorage()
	for _, value := range values {
		target.append(value)
	}
}

// Insert places values before logical position index, which may equal
// Len(). Values that do not fit in the free space are dropped from the
// front of values.
func (b *Buffer[T]) Insert(index int, values ...T) error {
	return b.Replace(index, index, values...)
}

// Replace substitutes the elements in [low, high) with values.
//
// The net change in length is clamped to what the buffer can hold:
// the buffer never grows past Cap(), and when values holds more
// elements than fit, the leading ones are dropped and the trailing
// ones kept. Elements outside [low, high) are never evicted.
func (b *Buffer[T]) Replace(low, high int, values ...T) error {
	return b.replace(low, high, slices.Values(values), len(values))
}

// ReplaceSeq is Replace for an arbitrary finite sequence. seq is
// ranged over exactly once, before the buffer is touched, so
// single-use sequences such as channel drains are safe.
func (b *Buffer[T]) ReplaceSeq(low, high int, seq iter.Seq[T]) error {
	return b.Replace(low, high, slices.Collect(seq)...)
}

func (b *Buffer[T]) replace(low, high int, seq iter.Seq[T], replacement int) error {
	if _, err := b.block().checkReplace(low, high, replacement); err != nil {
		return err
	}
	if replacement == 0 && low == high {
		return nil
	}
	return b.mutableStorage().replace(low, high, seq, replacement)
}

// Remove deletes the elements in [low, high). Removing an empty range
// is a no-op and does not copy shared storage.
func (b *Buffer[T]) Remove(low, high int) error {
	if err := checkRange(low, high, b.Len()); err != nil {
		return err
	}
	if low == high {
		return nil
	}
	return b.mutableStorage().remove(low, high)
}

// RemoveAll deletes every element. Capacity is unchanged.
func (b *Buffer[T]) RemoveAll() {
	if b.IsEmpty() {
		return
	}
	b.mutableStorage().removeAll()
}

// All returns an iterator over logical positions and elements, oldest
// first. Each range over the iterator starts from the current
// contents.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		first, second := b.block().segments()
		index := 0
		for _, segment := range [2][]T{first, second} {
			for _, value := range segment {
				if !yield(index, value) {
					return
				}
				index++
			}
		}
	}
}

// Values returns an iterator over the elements, oldest first.
func (b *Buffer[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range b.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// Backward returns an iterator over logical positions and elements,
// newest first.
func (b *Buffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		block := b.block()
		for index := block.count - 1; index >= 0; index-- {
			value := block.slots[physical(block.offset, block.capacity(), index)]
			if !yield(index, value) {
				return
			}
		}
	}
}
