// Package version provides build information for dogfinder.
package version

import "runtime/debug"

// Version is the release version. Overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. Overridden at build time using ldflags.
var Commit = "unknown"

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the full version string including the commit hash if available.
// A development build installed with go install reports its module version.
func String() string {
	v := Version
	if v == "development" {
		if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	if Commit != "unknown" && Commit != "" {
		return v + "+" + Commit
	}
	return v
}

// UserAgent returns the User-Agent sent to the shelter service.
func UserAgent() string {
	return "dogfinder/" + String()
}
