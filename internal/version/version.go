// Package version holds build information for the automaton tools.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Build information that can be set at compile time via -ldflags
var (
	// Version is the semantic version of the tools
	Version = "1.0.0"

	// GitCommit is the git commit hash when the binary was built
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built
	BuildDate = "unknown"
)

// Info represents version information
type Info struct {
	Version   string          `json:"version" yaml:"version"`
	GitCommit string          `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string          `json:"buildDate" yaml:"buildDate"`
	GoVersion string          `json:"goVersion" yaml:"goVersion"`
	Platform  string          `json:"platform" yaml:"platform"`
	SemVer    *semver.Version `json:"-" yaml:"-"`
}

// GetInfo returns the build information
func GetInfo() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}

	return &Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		SemVer:    sv,
	}, nil
}

// Satisfies reports whether the current version meets constraint, e.g. "^1"
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid constraint '%s': %w", constraint, err)
	}
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return false, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return c.Check(sv), nil
}

// String returns a one-line description of the build
func String() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("automaton v%s (invalid version)", Version)
	}

	parts := []string{fmt.Sprintf("automaton v%s", info.Version)}
	if info.GitCommit != "unknown" && info.GitCommit != "" {
		commit := info.GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		parts = append(parts, "commit "+commit)
	}
	if info.BuildDate != "unknown" && info.BuildDate != "" {
		parts = append(parts, "built "+info.BuildDate)
	}
	parts = append(parts, info.Platform)
	return strings.Join(parts, ", ")
}

// SetBuildInfo sets build information (used for testing)
func SetBuildInfo(version, gitCommit, buildDate string) {
	Version = version
	GitCommit = gitCommit
	BuildDate = buildDate
}
