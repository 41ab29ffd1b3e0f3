package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	v, c, d := Version, GitCommit, BuildDate
	t.Cleanup(func() { SetBuildInfo(v, c, d) })
}

func TestGetInfo(t *testing.T) {
	restore(t)
	SetBuildInfo("1.4.2", "abcdef0123", "2026-01-02")

	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", info.Version)
	assert.Equal(t, uint64(4), info.SemVer.Minor())
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestGetInfo_Invalid(t *testing.T) {
	restore(t)
	SetBuildInfo("not-a-version", "unknown", "unknown")

	_, err := GetInfo()
	assert.Error(t, err)
	assert.Contains(t, String(), "invalid version")
}

func TestSatisfies(t *testing.T) {
	restore(t)
	SetBuildInfo("1.3.0", "unknown", "unknown")

	ok, err := Satisfies("^1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Satisfies(">= 2.0.0")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Satisfies("not a constraint")
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	restore(t)
	SetBuildInfo("1.0.0", "0123456789abcdef", "2026-03-04")

	s := String()
	assert.Contains(t, s, "automaton v1.0.0")
	assert.Contains(t, s, "commit 0123456")
	assert.Contains(t, s, "built 2026-03-04")

	SetBuildInfo("1.0.0", "unknown", "unknown")
	assert.NotContains(t, String(), "commit")
}
