package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuild(t *testing.T, v, commit, built string) {
	t.Helper()
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = origVersion, origCommit, origBuildTime
	})
	Version, GitCommit, BuildTime = v, commit, built
}

func TestString(t *testing.T) {
	withBuild(t, "1.2.3", "abc123def", "2026-01-15T10:30:00Z")

	got := String()
	assert.Contains(t, got, "graphqa 1.2.3")
	assert.Contains(t, got, "commit: abc123def")
	assert.Contains(t, got, "built: 2026-01-15T10:30:00Z")
	assert.Contains(t, got, runtime.Version())
}

func TestInfo(t *testing.T) {
	withBuild(t, "dev", "unknown", "unknown")

	info := Info()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "unknown", info.Commit)
	assert.Equal(t, "unknown", info.BuildTime)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}
