// Package semver implements the strict MAJOR.MINOR.PATCH versioning scheme
// used by relkit. It deliberately rejects prerelease and build metadata:
// release artifacts carry plain X.Y.Z versions only.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
)

// VersionFormatError is returned when a version string is not exactly
// three dot-separated non-negative integers.
type VersionFormatError struct {
	Input string
}

func (e *VersionFormatError) Error() string {
	return fmt.Sprintf("invalid version format %q (expected: X.Y.Z)", e.Input)
}

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Version is a parsed semantic version. All components are non-negative.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a strict X.Y.Z version string.
// Returns VersionFormatError for anything else, including "v" prefixes,
// prerelease suffixes, and negative or non-numeric components.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, &VersionFormatError{Input: s}
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, &VersionFormatError{Input: s}
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, &VersionFormatError{Input: s}
	}
	patch, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{}, &VersionFormatError{Input: s}
	}

	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// MustParse parses a version string and panics on failure.
// Intended for constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsValid reports whether s is a parseable X.Y.Z version string.
func IsValid(s string) bool {
	return versionPattern.MatchString(s)
}

// String formats the version as "MAJOR.MINOR.PATCH".
// It is the inverse of Parse: Parse(v.String()) == v for any Version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1 if a < b, 0 if a == b, and 1 if a > b
// under semantic-version ordering.
func Compare(a, b Version) int {
	if c := compareInt(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareInt(a.Minor, b.Minor); c != 0 {
		return c
	}
	return compareInt(a.Patch, b.Patch)
}

// Less reports whether v orders strictly before other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
