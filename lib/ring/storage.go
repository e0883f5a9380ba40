// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ring

import (
	"fmt"
	"iter"
	"sync/atomic"
)

// storage is the block shared by one or more Buffer handles. It owns a
// slot array of fixed length, a logical count, and a wrap offset.
//
// The notation [0, 1][2, 3, 4] describes the state:
//
//	slots:  [2, 3, 4, 0, 1]
//	offset: 3
//
// When count < len(slots) the block is not full, new elements go to
// slot count, and offset is zero. Slots outside the live range always
// hold the zero value so that dropped elements can be collected.
type storage[T any] struct {
	slots  []T
	count  int
	offset int

	// owners counts the Buffer handles bound to this storage. It is
	// atomic because handle cleanups run on the runtime's cleanup
	// goroutine; all other fields belong to the mutating goroutine.
	owners atomic.Int64
}

func newStorage[T any](capacity int) (*storage[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &storage[T]{slots: make([]T, capacity)}, nil
}

// newStorageFrom fills physical slots from seq in order and places
// logical position 0 at offset. A sequence longer than capacity is
// rejected. A non-zero offset is only accepted when seq fills the
// block, since a partially filled block is never wrapped.
func newStorageFrom[T any](seq iter.Seq[T], capacity, offset int) (*storage[T], error) {
	block, err := newStorage[T](capacity)
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset >= capacity {
		return nil, fmt.Errorf("%w: offset %d, capacity %d", ErrInvalidOffset, offset, capacity)
	}

	count := 0
	for value := range seq {
		if count == capacity {
			return nil, fmt.Errorf("%w: more than %d elements", ErrCapacityExceeded, capacity)
		}
		block.slots[count] = value
		count++
	}

	if offset != 0 && count < capacity {
		return nil, fmt.Errorf("%w: offset %d on %d of %d elements", ErrInvalidOffset, offset, count, capacity)
	}
	block.count = count
	block.offset = offset
	return block, nil
}

func (block *storage[T]) capacity() int { return len(block.slots) }

func (block *storage[T]) wrapped() bool { return block.offset != 0 }

func (block *storage[T]) at(index int) (T, error) {
	if err := checkIndex(index, block.count); err != nil {
		var zero T
		return zero, err
	}
	return block.slots[physical(block.offset, block.capacity(), index)], nil
}

func (block *storage[T]) set(index int, value T) error {
	if err := checkIndex(index, block.count); err != nil {
		return err
	}
	block.slots[physical(block.offset, block.capacity(), index)] = value
	return nil
}

// slice copies logical range [low, high) into a new slice, joining the
// tail and head of the block when the range wraps.
func (block *storage[T]) slice(low, high int) ([]T, error) {
	if err := checkRange(low, high, block.count); err != nil {
		return nil, err
	}
	firstLow, firstHigh, secondLow, secondHigh := span(block.offset, block.capacity(), low, high)
	result := make([]T, 0, high-low)
	result = append(result, block.slots[firstLow:firstHigh]...)
	result = append(result, block.slots[secondLow:secondHigh]...)
	return result, nil
}

// append stores value after the newest element. On a full block it
// overwrites the oldest element and advances the offset.
func (block *storage[T]) append(value T) {
	if block.count < block.capacity() {
		block.slots[block.count] = value
		block.count++
		return
	}
	block.slots[block.offset] = value
	block.offset++
	if block.offset == block.capacity() {
		block.offset = 0
	}
}

// checkReplace validates a replacement of [low, high) by replacement
// elements and returns the clamped change in count.
func (block *storage[T]) checkReplace(low, high, replacement int) (int, error) {
	if err := checkRange(low, high, block.count); err != nil {
		return 0, err
	}
	delta := clampDelta(replacement, high-low, block.capacity(), block.count)
	if delta > 0 && block.wrapped() {
		return 0, fmt.Errorf("%w: growing by %d at offset %d", ErrGrowthOnWrappedBuffer, delta, block.offset)
	}
	return delta, nil
}

// replace substitutes logical range [low, high) with the replacement
// elements of seq, which yields exactly replacement values. Only the
// trailing elements that fit are written; leading ones are skipped as
// seq is consumed.
func (block *storage[T]) replace(low, high int, seq iter.Seq[T], replacement int) error {
	delta, err := block.checkReplace(low, high, replacement)
	if err != nil {
		return err
	}
	width := high - low
	written := width + delta
	skipped := replacement - written

	if delta <= 0 {
		block.fill(low, seq, skipped, written)
		return block.remove(low+written, high)
	}

	// Growth only happens unwrapped, so logical and physical positions
	// coincide. Open a gap of delta slots at high by moving the
	// trailing elements toward the end of the block.
	copy(block.slots[high+delta:block.count+delta], block.slots[high:block.count])
	block.count += delta
	block.fill(low, seq, skipped, written)
	return nil
}

// fill writes written values from seq starting at logical position
// low, after discarding the first skipped values.
func (block *storage[T]) fill(low int, seq iter.Seq[T], skipped, written int) {
	if written == 0 {
		return
	}
	position := 0
	for value := range seq {
		if position >= skipped {
			index := low + position - skipped
			block.slots[physical(block.offset, block.capacity(), index)] = value
		}
		position++
		if position == skipped+written {
			return
		}
	}
}

// remove deletes logical range [low, high). On an unwrapped block the
// trailing elements move down with one copy. On a wrapped block they
// move one at a time through the wrap point, then the block is rotated
// back to offset zero.
func (block *storage[T]) remove(low, high int) error {
	if err := checkRange(low, high, block.count); err != nil {
		return err
	}
	width := high - low
	if width == 0 {
		return nil
	}
	if width == block.count {
		block.removeAll()
		return nil
	}

	remaining := block.count - width
	if !block.wrapped() {
		copy(block.slots[low:remaining], block.slots[high:block.count])
		clear(block.slots[remaining:block.count])
	} else {
		capacity := block.capacity()
		for index := low; index < remaining; index++ {
			from := physical(block.offset, capacity, index+width)
			to := physical(block.offset, capacity, index)
			block.slots[to] = block.slots[from]
		}
		rotateLeft(block.slots, block.offset)
		clear(block.slots[remaining:])
	}
	block.offset = 0
	block.count = remaining
	return nil
}

func (block *storage[T]) removeAll() {
	if block.wrapped() {
		clear(block.slots)
	} else {
		clear(block.slots[:block.count])
	}
	block.count = 0
	block.offset = 0
}

// clone returns an unwrapped copy of the logical contents with the
// same capacity and no owners.
func (block *storage[T]) clone() *storage[T] {
	duplicate := &storage[T]{slots: make([]T, block.capacity()), count: block.count}
	firstLow, firstHigh, secondLow, secondHigh := span(block.offset, block.capacity(), 0, block.count)
	copied := copy(duplicate.slots, block.slots[firstLow:firstHigh])
	copy(duplicate.slots[copied:], block.slots[secondLow:secondHigh])
	return duplicate
}

// segments returns the physical views that hold the logical contents
// in order. The second view is empty unless the block is wrapped.
func (block *storage[T]) segments() (first, second []T) {
	firstLow, firstHigh, secondLow, secondHigh := span(block.offset, block.capacity(), 0, block.count)
	return block.slots[firstLow:firstHigh], block.slots[secondLow:secondHigh]
}
