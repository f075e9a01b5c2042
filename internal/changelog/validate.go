package changelog

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/relkit/relkit/internal/semver"
)

// Violation describes a single invariant violated by a document.
// Rule is a stable machine-readable identifier; Message explains the
// finding for humans.
type Violation struct {
	Rule    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Message)
}

var validateDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate checks all document invariants non-destructively and returns
// the list of violations. An empty list means the document is valid.
//
// Invariants: at most one Unreleased section, placed first; released
// version labels strictly descending with no repeats; every released
// section carries a parseable date; no blank entries.
func (d *Document) Validate() []Violation {
	var violations []Violation

	violations = append(violations, d.checkUnreleasedPlacement()...)
	violations = append(violations, d.checkReleasedSections()...)
	violations = append(violations, d.checkEntries()...)

	return violations
}

// checkUnreleasedPlacement enforces the single-first-Unreleased invariant.
func (d *Document) checkUnreleasedPlacement() []Violation {
	var violations []Violation
	count := 0
	for i, s := range d.Sections {
		if !s.IsUnreleased() {
			continue
		}
		count++
		if count > 1 {
			violations = append(violations, Violation{
				Rule:    "unreleased-unique",
				Message: "more than one [Unreleased] section",
			})
		}
		if i != 0 {
			violations = append(violations, Violation{
				Rule:    "unreleased-first",
				Message: "[Unreleased] section is not the first section",
			})
		}
		if s.Date != "" {
			violations = append(violations, Violation{
				Rule:    "unreleased-dated",
				Message: "[Unreleased] section carries a release date",
			})
		}
	}
	return violations
}

// checkReleasedSections enforces version syntax, strict descending order,
// uniqueness, and date validity for dated sections.
func (d *Document) checkReleasedSections() []Violation {
	var violations []Violation
	var prev *semver.Version
	var prevLabel string
	seen := make(map[string]bool)

	for _, s := range d.Sections {
		if s.IsUnreleased() {
			continue
		}

		v, err := semver.Parse(s.Version)
		if err != nil {
			violations = append(violations, Violation{
				Rule:    "version-format",
				Message: fmt.Sprintf("invalid version label %q (expected: X.Y.Z)", s.Version),
			})
			continue
		}

		if seen[s.Version] {
			violations = append(violations, Violation{
				Rule:    "version-duplicate",
				Message: fmt.Sprintf("duplicate version %s", s.Version),
			})
		}
		seen[s.Version] = true

		if prev != nil && semver.Compare(v, *prev) >= 0 {
			violations = append(violations, Violation{
				Rule:    "version-order",
				Message: fmt.Sprintf("version %s should come after %s", prevLabel, s.Version),
			})
		}
		prev = &v
		prevLabel = s.Version

		violations = append(violations, checkDate(s)...)
	}
	return violations
}

// checkDate validates the release date of a dated section.
func checkDate(s Section) []Violation {
	if s.Date == "" {
		return []Violation{{
			Rule:    "date-missing",
			Message: fmt.Sprintf("section [%s] is missing a release date", s.Version),
		}}
	}
	if !validateDatePattern.MatchString(s.Date) {
		return []Violation{{
			Rule:    "date-format",
			Message: fmt.Sprintf("section [%s] has invalid date %q (expected: YYYY-MM-DD)", s.Version, s.Date),
		}}
	}
	if _, err := time.Parse("2006-01-02", s.Date); err != nil {
		return []Violation{{
			Rule:    "date-format",
			Message: fmt.Sprintf("section [%s] has invalid date %q: not a calendar date", s.Version, s.Date),
		}}
	}
	return nil
}

// checkEntries rejects blank entry text anywhere in the document.
func (d *Document) checkEntries() []Violation {
	var violations []Violation
	for _, s := range d.Sections {
		for _, e := range s.Entries() {
			if strings.TrimSpace(e.Text) == "" {
				violations = append(violations, Violation{
					Rule:    "entry-blank",
					Message: fmt.Sprintf("section [%s] has a blank %s entry", s.Version, e.Category),
				})
			}
		}
	}
	return violations
}
