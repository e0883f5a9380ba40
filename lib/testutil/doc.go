// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for the ring packages.
//
// [RequireElements] compares a sequence or slice against the expected
// elements and reports both in full on mismatch, which is the common
// assertion for ring contents. [RequireErrorIs] checks a returned
// error against a sentinel with errors.Is.
//
// [UniqueName] generates monotonically increasing names for snapshot
// files and other test fixtures that must not collide between parallel
// tests sharing a directory.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since a failed assertion ends the test.
//
// This package has no dependencies on other packages of the module.
package testutil
