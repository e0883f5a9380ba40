// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Code that times work accepts a Clock instead of calling time.Now or
// time.Since directly. In production, Real() provides the standard
// library behavior. In tests, Fake() provides a clock that moves only
// when Advance is called, or by a fixed step on every read:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	c.SetStep(time.Millisecond)
//	start := c.Now()
//	elapsed := c.Since(start) // exactly 1ms
package clock
