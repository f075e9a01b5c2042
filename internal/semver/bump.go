package semver

import "fmt"

// BumpKind is the severity class of a version increment.
// Severity order: BumpMajor > BumpMinor > BumpPatch > BumpNone.
type BumpKind int

const (
	// BumpNone means no release-worthy changes were detected.
	BumpNone BumpKind = iota
	// BumpPatch covers backwards-compatible corrective changes.
	BumpPatch
	// BumpMinor covers backwards-compatible new capability.
	BumpMinor
	// BumpMajor covers breaking or incompatible changes.
	BumpMajor
)

// String returns the lowercase name of the bump kind.
func (k BumpKind) String() string {
	switch k {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	case BumpNone:
		return "none"
	default:
		return fmt.Sprintf("BumpKind(%d)", int(k))
	}
}

// ParseBumpKind parses a bump kind name (major, minor, patch, none).
func ParseBumpKind(s string) (BumpKind, error) {
	switch s {
	case "major":
		return BumpMajor, nil
	case "minor":
		return BumpMinor, nil
	case "patch":
		return BumpPatch, nil
	case "none":
		return BumpNone, nil
	default:
		return BumpNone, fmt.Errorf("invalid bump type %q: valid options are major, minor, patch", s)
	}
}

// NoOpError is returned when Bump is called with BumpNone.
// Callers are expected to treat a BumpNone suggestion as "nothing to
// release" and never reach Bump with it.
type NoOpError struct{}

func (e *NoOpError) Error() string {
	return "cannot bump version: bump kind is none"
}

// Bump returns the next version for the given bump kind.
// Major resets minor and patch, minor resets patch, patch increments only
// the patch component. BumpNone returns NoOpError.
func (v Version) Bump(kind BumpKind) (Version, error) {
	switch kind {
	case BumpMajor:
		return Version{Major: v.Major + 1}, nil
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case BumpPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	default:
		return Version{}, &NoOpError{}
	}
}
