// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ringstore

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestCompressionTagString(t *testing.T) {
	tests := []struct {
		tag  CompressionTag
		want string
	}{
		{CompressionNone, "none"},
		{CompressionLZ4, "lz4"},
		{CompressionZstd, "zstd"},
		{CompressionTag(99), "unknown(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tag.String(); got != tt.want {
				t.Errorf("CompressionTag(%d).String() = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestParseCompressionTag(t *testing.T) {
	for _, name := range []string{"none", "lz4", "zstd"} {
		tag, err := ParseCompressionTag(name)
		if err != nil {
			t.Fatalf("ParseCompressionTag(%q) failed: %v", name, err)
		}
		if tag.String() != name {
			t.Errorf("roundtrip: ParseCompressionTag(%q).String() = %q", name, tag.String())
		}
	}

	if tag, err := ParseCompressionTag(""); err != nil || tag != CompressionNone {
		t.Errorf("ParseCompressionTag(\"\") = %v, %v; want none", tag, err)
	}
	if _, err := ParseCompressionTag("gzip"); err == nil {
		t.Error("ParseCompressionTag(\"gzip\") should fail")
	}
}

func TestCompressionTagText(t *testing.T) {
	var tag CompressionTag
	if err := tag.UnmarshalText([]byte("zstd")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if tag != CompressionZstd {
		t.Errorf("UnmarshalText(zstd) = %v", tag)
	}
	text, _ := tag.MarshalText()
	if string(text) != "zstd" {
		t.Errorf("MarshalText = %q, want zstd", text)
	}
	if err := tag.UnmarshalText([]byte("brotli")); err == nil {
		t.Error("UnmarshalText(brotli) should fail")
	}
}

func TestCompressRoundtrip(t *testing.T) {
	data := bytes.Repeat([]byte("ring buffer element stream "), 200)

	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(tag.String(), func(t *testing.T) {
			stored, used, err := compress(data, tag)
			if err != nil {
				t.Fatalf("compress failed: %v", err)
			}
			if used != tag {
				t.Errorf("compress used %v, want %v", used, tag)
			}
			if tag != CompressionNone && len(stored) >= len(data) {
				t.Errorf("compressed size %d is not smaller than %d", len(stored), len(data))
			}
			restored, err := decompress(stored, used, len(data))
			if err != nil {
				t.Fatalf("decompress failed: %v", err)
			}
			if !bytes.Equal(restored, data) {
				t.Error("roundtrip changed the data")
			}
		})
	}
}

func TestCompressFallsBackOnRandomData(t *testing.T) {
	data := make([]byte, 512)
	rand.Read(data)

	for _, tag := range []CompressionTag{CompressionLZ4, CompressionZstd} {
		stored, used, err := compress(data, tag)
		if err != nil {
			t.Fatalf("compress(%v) failed: %v", tag, err)
		}
		if used != CompressionNone {
			t.Errorf("compress(%v) on random data used %v, want none", tag, used)
		}
		if !bytes.Equal(stored, data) {
			t.Errorf("compress(%v) fallback changed the data", tag)
		}
	}
}

func TestDecompressSizeMismatch(t *testing.T) {
	data := bytes.Repeat([]byte{7}, 1024)
	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		stored, used, err := compress(data, tag)
		if err != nil {
			t.Fatalf("compress(%v) failed: %v", tag, err)
		}
		if _, err := decompress(stored, used, len(data)+1); err == nil {
			t.Errorf("decompress(%v) with wrong size should fail", used)
		}
	}
}

func TestCompressUnknownTag(t *testing.T) {
	if _, _, err := compress([]byte("x"), CompressionTag(9)); err == nil {
		t.Error("compress with unknown tag should fail")
	}
	if _, err := decompress([]byte("x"), CompressionTag(9), 1); err == nil {
		t.Error("decompress with unknown tag should fail")
	}
}
