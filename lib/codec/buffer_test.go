// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/bureau-foundation/ringbuffer/lib/ring"
)

func wrappedBuffer(t *testing.T) *ring.Buffer[int64] {
	t.Helper()
	buffer, err := ring.New[int64](4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	buffer.Append(1, 2, 3, 4, 5, 6)
	return buffer
}

func TestBufferRoundtrip(t *testing.T) {
	buffer := wrappedBuffer(t)

	data, err := MarshalBuffer(buffer)
	if err != nil {
		t.Fatalf("MarshalBuffer: %v", err)
	}
	decoded, err := UnmarshalBuffer[int64](data)
	if err != nil {
		t.Fatalf("UnmarshalBuffer: %v", err)
	}
	if !slices.Equal(decoded.Elements(), buffer.Elements()) {
		t.Errorf("elements = %v, want %v", decoded.Elements(), buffer.Elements())
	}
	if decoded.Cap() != buffer.Cap() {
		t.Errorf("Cap() = %d, want %d", decoded.Cap(), buffer.Cap())
	}
	if got, want := decoded.GoString(), "Buffer<int64,4>([3, 4, 5, 6])"; got != want {
		t.Errorf("decoded layout %q, want unwrapped %q", got, want)
	}
}

func TestBufferEncodingIgnoresWrapOffset(t *testing.T) {
	wrapped := wrappedBuffer(t)
	unwrapped := ring.Of[int64](3, 4, 5, 6)

	first, err := MarshalBuffer(wrapped)
	if err != nil {
		t.Fatalf("MarshalBuffer wrapped: %v", err)
	}
	second, err := MarshalBuffer(unwrapped)
	if err != nil {
		t.Fatalf("MarshalBuffer unwrapped: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("equal contents encoded differently: %x vs %x", first, second)
	}
}

func TestUnmarshalBufferRejectsOverfullSnapshot(t *testing.T) {
	data, err := Marshal(ring.Snapshot[int64]{Capacity: 2, Elements: []int64{1, 2, 3}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := UnmarshalBuffer[int64](data); !errors.Is(err, ring.ErrCapacityExceeded) {
		t.Errorf("UnmarshalBuffer error = %v, want ErrCapacityExceeded", err)
	}
}

func TestUnmarshalBufferRejectsZeroCapacity(t *testing.T) {
	data, err := Marshal(ring.Snapshot[string]{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := UnmarshalBuffer[string](data); !errors.Is(err, ring.ErrInvalidCapacity) {
		t.Errorf("UnmarshalBuffer error = %v, want ErrInvalidCapacity", err)
	}
}

func TestUnmarshalBufferRejectsHugeCapacity(t *testing.T) {
	data, err := Marshal(ring.Snapshot[int]{Capacity: 1 << 40, Elements: []int{1}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := UnmarshalBuffer[int](data); !errors.Is(err, ErrSnapshotTooLarge) {
		t.Errorf("UnmarshalBuffer error = %v, want ErrSnapshotTooLarge", err)
	}

	var stream bytes.Buffer
	if err := NewEncoder(&stream).Encode(ring.Snapshot[int]{Capacity: MaxSnapshotCapacity + 1}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := DecodeBuffer[int](NewDecoder(&stream)); !errors.Is(err, ErrSnapshotTooLarge) {
		t.Errorf("DecodeBuffer error = %v, want ErrSnapshotTooLarge", err)
	}
}

func TestUnmarshalBufferAcceptsCapacityAtLimit(t *testing.T) {
	data, err := Marshal(ring.Snapshot[bool]{Capacity: MaxSnapshotCapacity, Elements: []bool{true}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	buffer, err := UnmarshalBuffer[bool](data)
	if err != nil {
		t.Fatalf("UnmarshalBuffer: %v", err)
	}
	if buffer.Cap() != MaxSnapshotCapacity || buffer.Len() != 1 {
		t.Errorf("Cap=%d Len=%d, want %d and 1", buffer.Cap(), buffer.Len(), MaxSnapshotCapacity)
	}
}

func TestBufferStream(t *testing.T) {
	var stream bytes.Buffer
	encoder := NewEncoder(&stream)
	first := ring.Of("a", "b")
	second := ring.Of("c")
	for _, buffer := range []*ring.Buffer[string]{first, second} {
		if err := EncodeBuffer(encoder, buffer); err != nil {
			t.Fatalf("EncodeBuffer: %v", err)
		}
	}

	decoder := NewDecoder(&stream)
	for _, want := range []*ring.Buffer[string]{first, second} {
		got, err := DecodeBuffer[string](decoder)
		if err != nil {
			t.Fatalf("DecodeBuffer: %v", err)
		}
		if got.String() != want.String() {
			t.Errorf("decoded %s, want %s", got, want)
		}
	}
	if _, err := DecodeBuffer[string](decoder); !errors.Is(err, io.EOF) {
		t.Errorf("DecodeBuffer at end = %v, want io.EOF", err)
	}
}
