// Package version reports the stagelint build: its release version, the
// linked BuildKit parser, and the VCS revision when the binary carries one.
package version

import (
	"runtime"
	"runtime/debug"
	"slices"
)

// version is set at link time with
// -ldflags "-X github.com/wharflab/stagelint/internal/version.version=v1.2.3".
var version = "dev"

const buildkitModule = "github.com/moby/buildkit"

// Version returns the version string with the BuildKit parser version
// appended when it is known.
func Version() string {
	if bk := GetInfo().BuildkitVersion; bk != "" {
		return version + " (buildkit " + bk + ")"
	}
	return version
}

// RawVersion returns the semantic version string without any suffix.
func RawVersion() string {
	return version
}

// Info holds structured version information for machine-readable output.
type Info struct {
	Version         string   `json:"version"`
	BuildkitVersion string   `json:"buildkitVersion,omitempty"`
	Platform        Platform `json:"platform"`
	GoVersion       string   `json:"goVersion"`
	GitCommit       string   `json:"gitCommit,omitempty"`
}

// Platform describes the OS and architecture.
type Platform struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// GetInfo returns structured version information.
func GetInfo() Info {
	info := Info{
		Version:   version,
		Platform:  Platform{OS: runtime.GOOS, Arch: runtime.GOARCH},
		GoVersion: runtime.Version(),
	}

	build, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if i := slices.IndexFunc(build.Deps, func(dep *debug.Module) bool {
		return dep.Path == buildkitModule
	}); i >= 0 {
		info.BuildkitVersion = build.Deps[i].Version
	}
	if i := slices.IndexFunc(build.Settings, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	}); i >= 0 {
		info.GitCommit = shortCommit(build.Settings[i].Value)
	}
	return info
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
