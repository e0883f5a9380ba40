// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Release builds set these with -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/ringbuffer/lib/version.Commit=$(git rev-parse --short HEAD)" ./cmd/ringctl
//
// Unset fields fall back to the VCS stamp the Go toolchain embeds.
var (
	Version   = "0.1.0-dev"
	Commit    = ""
	Modified  = ""
	BuildTime = ""
)

// shortCommitLength is how much of a full VCS revision is shown.
const shortCommitLength = 12

// Build describes the running ringctl binary.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Modified  bool   `json:"modified"`
	Time      string `json:"time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Current resolves the build description from ldflags, then from the
// embedded build info.
func Current() Build {
	info, _ := debug.ReadBuildInfo()
	return resolve(info)
}

func resolve(info *debug.BuildInfo) Build {
	build := Build{
		Version:   Version,
		Commit:    Commit,
		Modified:  Modified == "true",
		Time:      BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info == nil {
		return build
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if build.Commit == "" {
				build.Commit = setting.Value
			}
		case "vcs.modified":
			if Modified == "" {
				build.Modified = setting.Value == "true"
			}
		case "vcs.time":
			if build.Time == "" {
				build.Time = setting.Value
			}
		}
	}
	if len(build.Commit) > shortCommitLength {
		build.Commit = build.Commit[:shortCommitLength]
	}
	return build
}

// String renders "0.1.0-dev (abc1234-dirty, 2026-02-10T00:00:00Z)",
// with "unknown" standing in for missing fields.
func (b Build) String() string {
	commit := b.Commit
	if commit == "" {
		commit = "unknown"
	}
	if b.Modified {
		commit += "-dirty"
	}
	built := b.Time
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("%s (%s, %s)", b.Version, commit, built)
}
