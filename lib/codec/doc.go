// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's standard CBOR encoding
// configuration and the serialized form of ring buffers.
//
// Ring snapshots are stored and exchanged as CBOR. The encoder uses
// Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items. The same
// buffer contents always produce identical bytes, which is what lets
// the snapshot store address and verify snapshots by digest.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For ring buffers specifically:
//
//	data, err := codec.MarshalBuffer(buffer)
//	buffer, err := codec.UnmarshalBuffer[int64](data)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// # Struct Tag Rules
//
// A `cbor` tag marks a type that is only ever serialized as CBOR
// ([ring.Snapshot], the store's file header). A `json` tag marks a
// type that may be serialized as both JSON and CBOR: fxamacker/cbor
// reads `json` tags when `cbor` tags are absent. Never put both tags
// on one field.
package codec
