// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ringstore persists ring buffer snapshots in a directory.
//
// Each snapshot is one file, NAME.ring, holding a fixed header
// followed by the (optionally compressed) deterministic CBOR encoding
// of a [ring.Snapshot]:
//
//	offset  size  field
//	0       4     magic "RING"
//	4       1     format version (1)
//	5       1     compression tag ([CompressionTag])
//	6       4     uncompressed payload length, big-endian
//	10      32    BLAKE3 keyed digest of the uncompressed payload
//	42      ...   payload
//
// The digest is computed over the uncompressed CBOR bytes, so the same
// buffer contents have the same digest whichever compression was used
// to store them. Loading verifies the digest; a mismatch, a truncated
// file, or an unknown header returns [ErrCorrupt].
//
// Writes are atomic: the file is written to a temporary name, synced,
// and renamed into place. Writers hold an exclusive flock on the
// directory's .lock file, so stores in separate processes sharing a
// directory never interleave a save with a delete. Readers take no
// lock.
//
// The generic helpers [SaveBuffer] and [LoadBuffer] encode and decode
// through lib/codec. [Store.Save] and [Store.Load] work on already
// encoded payloads for callers, such as the CBOR diagnostic command,
// that do not know the element type.
package ringstore
