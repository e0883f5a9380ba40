// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ringstore

import (
	"testing"

	"github.com/zeebo/blake3"
)

func TestDigestPayloadIsKeyed(t *testing.T) {
	payload := []byte{0x82, 0x01, 0x02}
	keyed := DigestPayload(payload)
	plain := blake3.Sum256(payload)
	if keyed == Digest(plain) {
		t.Error("snapshot digest equals the unkeyed BLAKE3 hash")
	}
	if DigestPayload(payload) != keyed {
		t.Error("DigestPayload is not deterministic")
	}
	if DigestPayload([]byte{0x82, 0x01, 0x03}) == keyed {
		t.Error("different payloads produced the same digest")
	}
}

func TestDigestText(t *testing.T) {
	digest := DigestPayload([]byte("snapshot"))
	text := digest.String()
	if len(text) != 64 {
		t.Fatalf("String() length = %d, want 64", len(text))
	}
	if digest.Short() != text[:12] {
		t.Errorf("Short() = %q, want prefix of %q", digest.Short(), text)
	}

	parsed, err := ParseDigest(text)
	if err != nil {
		t.Fatalf("ParseDigest failed: %v", err)
	}
	if parsed != digest {
		t.Error("ParseDigest(String()) did not roundtrip")
	}

	if _, err := ParseDigest("zz"); err == nil {
		t.Error("ParseDigest of non-hex should fail")
	}
	if _, err := ParseDigest(text[:62]); err == nil {
		t.Error("ParseDigest of a short digest should fail")
	}
}
