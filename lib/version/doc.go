// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version describes the ringctl build for --version.
//
// [Version], [Commit], [Modified] and [BuildTime] may be injected with
// -ldflags -X. Anything left unset is filled from the vcs.* settings
// of [runtime/debug.ReadBuildInfo], so a plain "go build" in a git
// checkout still reports its revision. [Current] returns the resolved
// [Build].
package version
