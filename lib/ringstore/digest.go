// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ringstore

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest is the 32-byte BLAKE3 keyed digest of a snapshot payload.
type Digest [32]byte

// snapshotDomainKey separates snapshot digests from any other BLAKE3
// use of the same bytes. It is the ASCII domain name zero-padded to
// 32 bytes; changing it invalidates every stored snapshot.
var snapshotDomainKey = [32]byte{
	'r', 'i', 'n', 'g', 'b', 'u', 'f', 'f', 'e', 'r', '.', 's', 'n', 'a', 'p', 's',
	'h', 'o', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// DigestPayload computes the snapshot-domain digest of an encoded
// snapshot payload.
func DigestPayload(payload []byte) Digest {
	hasher, err := blake3.NewKeyed(snapshotDomainKey[:])
	if err != nil {
		panic("ringstore: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// String returns the hex encoding of the digest.
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// Short returns the first 12 hex characters, for listings.
func (digest Digest) Short() string {
	return digest.String()[:12]
}

// MarshalText renders the digest as hex.
func (digest Digest) MarshalText() ([]byte, error) {
	return []byte(digest.String()), nil
}

// ParseDigest parses a 64-character hex digest.
func ParseDigest(text string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return digest, fmt.Errorf("parsing snapshot digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("snapshot digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
