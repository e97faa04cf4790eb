// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version carries the build metadata injected via ldflags.
package version

import "fmt"

// Info describes the running binary.
type Info struct {
	Version   string // git tag, "dev" for local builds
	GitCommit string
	BuildTime string // RFC3339
}

// String formats the info the way -version prints it.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = "dev"
	}
	commit := i.GitCommit
	if commit == "" {
		commit = "unknown"
	}
	built := i.BuildTime
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("azaya %s (commit: %s, built: %s)", v, commit, built)
}
