// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueName returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. The result only contains the
// characters of prefix, '-' and digits, so it is a valid snapshot
// name whenever prefix is.
//
//	name := testutil.UniqueName("window") // "window-1", "window-2", ...
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}
