// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ringstore

import (
	"encoding/binary"
	"fmt"
	"math"
)

// FormatVersion is the snapshot file format this package reads and
// writes.
const FormatVersion = 1

const headerSize = 4 + 1 + 1 + 4 + 32

var magic = [4]byte{'R', 'I', 'N', 'G'}

// header is the fixed prefix of a snapshot file.
type header struct {
	compression CompressionTag
	size        int
	digest      Digest
}

func (h header) append(destination []byte) []byte {
	destination = append(destination, magic[:]...)
	destination = append(destination, FormatVersion, byte(h.compression))
	destination = binary.BigEndian.AppendUint32(destination, uint32(h.size))
	return append(destination, h.digest[:]...)
}

// parseHeader splits a snapshot file into its header and payload.
func parseHeader(data []byte) (header, []byte, error) {
	if len(data) < headerSize {
		return header{}, nil, fmt.Errorf("%w: %d bytes is shorter than the %d-byte header", ErrCorrupt, len(data), headerSize)
	}
	if [4]byte(data[0:4]) != magic {
		return header{}, nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, data[0:4])
	}
	if data[4] != FormatVersion {
		return header{}, nil, fmt.Errorf("%w: unsupported format version %d", ErrCorrupt, data[4])
	}
	parsed := header{
		compression: CompressionTag(data[5]),
		size:        int(binary.BigEndian.Uint32(data[6:10])),
	}
	copy(parsed.digest[:], data[10:headerSize])
	return parsed, data[headerSize:], nil
}

// checkPayloadSize rejects payloads the header cannot describe.
func checkPayloadSize(size int) error {
	if size > math.MaxUint32 {
		return fmt.Errorf("snapshot payload of %d bytes exceeds the format limit", size)
	}
	return nil
}
