// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time.
package buildvars

// Version is set at link time via
// `-ldflags -X github.com/rskvault/rskvault/buildvars.Version=...`.
// It will be empty for local or development builds.
var Version string

// Commit is the short VCS revision, set at link time alongside Version.
var Commit string

// Date is the build timestamp (RFC 3339), set at link time.
var Date string

// VersionOrDefault returns Version if set, otherwise the provided default.
func VersionOrDefault(def string) string {
	if len(Version) > 0 {
		return Version
	}
	return def
}
