// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ring

import (
	"fmt"
	"slices"
)

// physical maps logical position index to its slot in a block of the
// given capacity whose logical start sits at offset. Requires
// 0 <= offset < capacity and 0 <= index < capacity.
func physical(offset, capacity, index int) int {
	position := offset + index
	if position >= capacity {
		position -= capacity
	}
	return position
}

// span returns the physical slot ranges [firstLow, firstHigh) and
// [secondLow, secondHigh) that hold logical range [low, high). The
// second range is empty unless the logical range crosses the end of
// the block. Requires 0 <= low <= high <= capacity.
func span(offset, capacity, low, high int) (firstLow, firstHigh, secondLow, secondHigh int) {
	start := offset + low
	end := offset + high
	if start >= capacity {
		return start - capacity, end - capacity, 0, 0
	}
	if end <= capacity {
		return start, end, 0, 0
	}
	return start, capacity, 0, end - capacity
}

// clampDelta returns the net change in element count caused by
// replacing width elements with replacement new ones, clamped so the
// result neither drops below zero elements removed from the range nor
// exceeds the free space of the block.
func clampDelta(replacement, width, capacity, count int) int {
	delta := replacement - width
	return max(-width, min(delta, capacity-count))
}

// checkIndex validates a single-element position against count.
func checkIndex(index, count int) error {
	if index < 0 || index >= count {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, count)
	}
	return nil
}

// checkRange validates a half-open logical range against count.
func checkRange(low, high, count int) error {
	if low < 0 || high < low || high > count {
		return fmt.Errorf("%w: range [%d, %d), length %d", ErrRangeOutOfBounds, low, high, count)
	}
	return nil
}

// rotateLeft rotates slots in place so that slots[shift] becomes
// slots[0], using three reversals and no extra memory.
func rotateLeft[T any](slots []T, shift int) {
	if shift <= 0 || shift >= len(slots) {
		return
	}
	slices.Reverse(slots[:shift])
	slices.Reverse(slots[shift:])
	slices.Reverse(slots)
}
