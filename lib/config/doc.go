// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for ringctl.
//
// Configuration is loaded from a single file named by either the
// RINGCTL_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. Without either, ringctl runs on [Default].
//
// The file may contain environment-specific sections (development,
// production) that override base values when [Config].Environment
// matches. Production without an explicit section stores snapshots
// with zstd and never colors output.
//
// ${HOME}, ${RINGCTL_ROOT}, and ${VAR:-default} patterns are expanded
// in path fields after loading. No other environment variables
// override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Ring, Store, Render, Bench
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
