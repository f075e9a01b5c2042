package changelog

import (
	"fmt"
	"strings"
)

// SectionNotFoundError is returned when a requested version doesn't exist.
type SectionNotFoundError struct {
	Version   string
	Available []string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.Available, ", "))
}

// GetSection retrieves the section for a specific version label.
// Accepts "Unreleased" (any case) and both "v1.2.0" and "1.2.0" forms.
func (d *Document) GetSection(version string) (*Section, error) {
	normalized := normalizeLabel(version)
	for i := range d.Sections {
		if normalizeLabel(d.Sections[i].Version) == normalized {
			return &d.Sections[i], nil
		}
	}
	return nil, &SectionNotFoundError{Version: version, Available: d.ListVersions()}
}

// Unreleased returns the Unreleased section, or nil if absent.
func (d *Document) Unreleased() *Section {
	for i := range d.Sections {
		if d.Sections[i].IsUnreleased() {
			return &d.Sections[i]
		}
	}
	return nil
}

// UnreleasedChanges returns the pending changes grouped by category.
// The zero value is returned when no Unreleased section exists.
func (d *Document) UnreleasedChanges() Changes {
	if s := d.Unreleased(); s != nil {
		return s.Changes
	}
	return Changes{}
}

// LatestRelease returns the newest released (dated) section, or nil if
// the changelog has no releases yet.
func (d *Document) LatestRelease() *Section {
	for i := range d.Sections {
		if !d.Sections[i].IsUnreleased() {
			return &d.Sections[i]
		}
	}
	return nil
}

// ListVersions returns all section labels in document order (newest first).
func (d *Document) ListVersions() []string {
	versions := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		versions[i] = s.Version
	}
	return versions
}

// AllEntries returns all entries from all sections, newest section first,
// canonical category order within each section.
func (d *Document) AllEntries() []Entry {
	var entries []Entry
	for _, s := range d.Sections {
		entries = append(entries, s.Entries()...)
	}
	return entries
}

// LastN returns the n most recent entries across all sections.
func (d *Document) LastN(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	entries := d.AllEntries()
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// EntryCount returns the total number of entries in the document.
func (d *Document) EntryCount() int {
	count := 0
	for _, s := range d.Sections {
		count += s.Changes.Count()
	}
	return count
}

// normalizeLabel lowercases a version label and strips a "v" prefix.
func normalizeLabel(label string) string {
	return strings.TrimPrefix(strings.ToLower(label), "v")
}
