package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, mainVersion string, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		if !ok {
			return nil, false
		}
		return &debug.BuildInfo{Main: debug.Module{Version: mainVersion}}, true
	}
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestString(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		commit    string
		buildInfo string
		expected  string
	}{
		{name: "development version without commit", version: "development", commit: "unknown", buildInfo: "(devel)", expected: "development"},
		{name: "release version with commit", version: "1.0.0", commit: "abc1234", expected: "1.0.0+abc1234"},
		{name: "unknown commit shows only version", version: "2.0.0", commit: "unknown", expected: "2.0.0"},
		{name: "empty commit shows only version", version: "2.0.0", commit: "", expected: "2.0.0"},
		{name: "go install version", version: "development", commit: "unknown", buildInfo: "v0.3.1", expected: "v0.3.1"},
		{name: "ldflags version wins over build info", version: "1.2.0", commit: "unknown", buildInfo: "v0.3.1", expected: "1.2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion, origCommit := Version, Commit
			defer func() {
				Version, Commit = origVersion, origCommit
			}()
			withBuildInfo(t, tt.buildInfo, tt.buildInfo != "")

			Version = tt.version
			Commit = tt.commit

			if got := String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	Version, Commit = "1.0.0", "abc1234"
	assert.Equal(t, "dogfinder/1.0.0+abc1234", UserAgent())
}
