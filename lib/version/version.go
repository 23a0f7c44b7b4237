// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/termconv/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// stamp holds the commit, dirty flag, and build time in effect.
type stamp struct {
	commit string
	dirty  bool
	time   string
}

// current resolves the build stamp. Linker-injected values win; VCS
// settings embedded by the toolchain fill in what was not injected.
func current() stamp {
	result := stamp{commit: GitCommit, dirty: GitDirty == "true", time: BuildTime}
	if GitCommit != "unknown" {
		return result
	}

	info, ok := readBuildInfo()
	if !ok {
		return result
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			result.commit = setting.Value
			if len(result.commit) > 12 {
				result.commit = result.commit[:12]
			}
		case "vcs.modified":
			result.dirty = setting.Value == "true"
		case "vcs.time":
			if BuildTime == "unknown" {
				result.time = setting.Value
			}
		}
	}
	return result
}

// Info returns a formatted version string suitable for version output.
func Info() string {
	build := current()
	dirty := ""
	if build.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, build.commit, dirty, build.time)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return current().commit
}
