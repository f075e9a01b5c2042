// Package classify derives a suggested semantic-version bump from the
// pending entries of a changelog's Unreleased section.
//
// The precedence rules are fixed, first match wins:
//  1. Removed entries, or any entry mentioning "breaking" or
//     "incompatible", demand a major bump.
//  2. Added entries demand a minor bump.
//  3. Fixed, Security, or Changed entries demand a patch bump.
//  4. Otherwise there is nothing to release.
package classify

import (
	"fmt"
	"strings"

	"github.com/relkit/relkit/internal/changelog"
	"github.com/relkit/relkit/internal/semver"
)

// breakingMarkers are substrings (matched case-insensitively in any
// category) that mark an entry as a breaking change.
var breakingMarkers = []string{"breaking", "incompatible"}

// Classify returns the suggested bump kind for the given pending changes.
// It is a pure function with no side effects.
func Classify(c changelog.Changes) semver.BumpKind {
	kind, _ := Explain(c)
	return kind
}

// Explain returns the suggested bump kind together with a human-readable
// reason describing which rule fired.
func Explain(c changelog.Changes) (semver.BumpKind, string) {
	if c.IsEmpty() {
		return semver.BumpNone, "no unreleased changes found"
	}

	if n := len(c.Removed); n > 0 {
		return semver.BumpMajor, fmt.Sprintf("breaking changes detected: %d removal(s)", n)
	}
	if n := countBreaking(c); n > 0 {
		return semver.BumpMajor, fmt.Sprintf("breaking changes detected: %d entry(ies) marked breaking/incompatible", n)
	}

	if n := len(c.Added); n > 0 {
		return semver.BumpMinor, fmt.Sprintf("new features detected: %d addition(s)", n)
	}

	if n := len(c.Fixed) + len(c.Security) + len(c.Changed); n > 0 {
		return semver.BumpPatch, fmt.Sprintf("fixes and corrective changes detected: %d item(s)", n)
	}

	// Only unmarked Deprecated entries remain. Deprecations announce a
	// future removal without changing behavior yet, so they do not force
	// a release on their own.
	return semver.BumpNone, "only deprecation notices pending: no release needed"
}

// countBreaking counts entries in any category whose text contains a
// breaking-change marker.
func countBreaking(c changelog.Changes) int {
	count := 0
	for _, cat := range changelog.ValidCategories() {
		for _, text := range c.Category(cat) {
			if hasBreakingMarker(text) {
				count++
			}
		}
	}
	return count
}

func hasBreakingMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range breakingMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
