// Package version reports the build version of the tracker binary.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time with
// -ldflags "-X tracker/internal/shared/version.Version=1.2.3".
var Version = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// Current returns Version in canonical semver form, or unchanged when it is
// not a semantic version (e.g. "dev").
func Current() string {
	v := Normalize(Version)
	if !semver.IsValid(v) {
		return Version
	}
	return semver.Canonical(v)
}
