// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts time reads for testability. Production code injects
// Real(); tests inject Fake() with deterministic time control.
//
// Code that measures elapsed time should accept a Clock instead of
// calling time.Now or time.Since directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Since returns the time elapsed since t. Equivalent to
	// Now().Sub(t).
	Since(t time.Time) time.Duration
}
