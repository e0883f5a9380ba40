// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ring

import (
	"fmt"
	"reflect"
	"strings"
)

// String renders the elements in logical order, e.g. "[1, 2, 3]".
func (b *Buffer[T]) String() string {
	var builder strings.Builder
	first, second := b.block().segments()
	builder.WriteByte('[')
	writeElements(&builder, first, false)
	writeElements(&builder, second, len(first) > 0)
	builder.WriteByte(']')
	return builder.String()
}

// GoString renders the element type, capacity, and physical layout.
// An unwrapped buffer renders as one segment, "Buffer<int,5>([1, 2])";
// a wrapped one renders the tail of the block (the oldest elements)
// and the head separately, "Buffer<int,3>([3][4, 5])". Comparing the
// two segments against String is how the wrap arithmetic is checked.
func (b *Buffer[T]) GoString() string {
	var builder strings.Builder
	block := b.block()
	fmt.Fprintf(&builder, "Buffer<%s,%d>([", reflect.TypeFor[T](), block.capacity())
	first, second := block.segments()
	writeElements(&builder, first, false)
	if block.wrapped() {
		builder.WriteString("][")
		writeElements(&builder, second, false)
	}
	builder.WriteString("])")
	return builder.String()
}

func writeElements[T any](builder *strings.Builder, elements []T, separate bool) {
	for index, element := range elements {
		if index > 0 || separate {
			builder.WriteString(", ")
		}
		fmt.Fprint(builder, element)
	}
}
