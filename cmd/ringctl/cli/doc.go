// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command tree behind ringctl: nested [Command]
// values with lazily built pflag flag sets, structured help output,
// and typo suggestions for unknown commands and flags.
//
// Errors returned from command handlers carry exit codes. [ToolError]
// classifies failures (bad input, missing snapshot, internal fault)
// and [ExitError] signals a handled non-zero exit. Both satisfy the
// interface{ ExitCode() int } that main checks.
package cli
