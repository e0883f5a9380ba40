// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/ringbuffer/lib/ring"
)

// ErrSnapshotTooLarge is returned when a decoded snapshot claims a
// capacity above [MaxSnapshotCapacity]. The slot array is allocated
// from that capacity, so it is checked before restoring.
var ErrSnapshotTooLarge = errors.New("codec: snapshot capacity too large")

// MarshalBuffer encodes the snapshot of buffer: its capacity and its
// elements in logical order. The wrap offset is not part of the
// encoding, so two buffers with equal contents encode identically.
func MarshalBuffer[T any](buffer *ring.Buffer[T]) ([]byte, error) {
	data, err := Marshal(buffer.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("encoding ring snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalBuffer decodes a snapshot produced by MarshalBuffer and
// restores it into a new buffer.
func UnmarshalBuffer[T any](data []byte) (*ring.Buffer[T], error) {
	var snapshot ring.Snapshot[T]
	if err := Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decoding ring snapshot: %w", err)
	}
	return restore(snapshot)
}

// EncodeBuffer writes the snapshot of buffer as one item of a CBOR
// sequence.
func EncodeBuffer[T any](encoder *Encoder, buffer *ring.Buffer[T]) error {
	if err := encoder.Encode(buffer.Snapshot()); err != nil {
		return fmt.Errorf("encoding ring snapshot: %w", err)
	}
	return nil
}

// DecodeBuffer reads the next snapshot from a CBOR sequence.
func DecodeBuffer[T any](decoder *Decoder) (*ring.Buffer[T], error) {
	var snapshot ring.Snapshot[T]
	if err := decoder.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decoding ring snapshot: %w", err)
	}
	return restore(snapshot)
}

func restore[T any](snapshot ring.Snapshot[T]) (*ring.Buffer[T], error) {
	if snapshot.Capacity > MaxSnapshotCapacity {
		return nil, fmt.Errorf("%w: capacity %d, limit %d", ErrSnapshotTooLarge, snapshot.Capacity, MaxSnapshotCapacity)
	}
	return ring.Restore(snapshot)
}
