// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"runtime/debug"
	"testing"
)

func setInjected(t *testing.T, commit, modified, buildTime string) {
	t.Helper()
	savedCommit, savedModified, savedTime := Commit, Modified, BuildTime
	t.Cleanup(func() { Commit, Modified, BuildTime = savedCommit, savedModified, savedTime })
	Commit, Modified, BuildTime = commit, modified, buildTime
}

func stampedInfo() *debug.BuildInfo {
	return &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "0123456789abcdef0123456789abcdef01234567"},
		{Key: "vcs.time", Value: "2026-03-01T12:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}}
}

func TestResolveFromBuildInfo(t *testing.T) {
	setInjected(t, "", "", "")

	build := resolve(stampedInfo())
	if build.Commit != "0123456789ab" {
		t.Errorf("Commit = %q, want revision shortened to 12", build.Commit)
	}
	if !build.Modified {
		t.Error("Modified = false, want true from vcs.modified")
	}
	if got, want := build.String(), Version+" (0123456789ab-dirty, 2026-03-01T12:00:00Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if build.Platform != runtime.GOOS+"/"+runtime.GOARCH || build.GoVersion != runtime.Version() {
		t.Errorf("runtime fields = %q %q", build.GoVersion, build.Platform)
	}
}

func TestInjectedValuesWin(t *testing.T) {
	setInjected(t, "abc1234", "false", "2026-02-10T00:00:00Z")

	build := resolve(stampedInfo())
	if got, want := build.String(), Version+" (abc1234, 2026-02-10T00:00:00Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestResolveWithoutBuildInfo(t *testing.T) {
	setInjected(t, "", "", "")

	if got, want := resolve(nil).String(), Version+" (unknown, unknown)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
