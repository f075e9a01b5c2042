package changelog

import "strings"

// UnreleasedLabel is the literal section label for pending changes.
const UnreleasedLabel = "Unreleased"

// Document is the in-memory model of a CHANGELOG.md file.
// Sections are ordered newest first; if an Unreleased section exists it is
// the first section. Preamble and Footer hold the text surrounding the
// sections and are carried verbatim through a parse/render round trip.
type Document struct {
	Preamble string
	Sections []Section
	Footer   string
}

// Section is a single version block in the changelog.
// Version is either the literal "Unreleased" or a bare semantic version
// (e.g., "1.2.0"). Date is required for released sections (YYYY-MM-DD)
// and empty for Unreleased.
type Section struct {
	Version string  `yaml:"version"`
	Date    string  `yaml:"date,omitempty"`
	Changes Changes `yaml:"changes"`
}

// Changes groups change entries by Keep a Changelog category.
// All fields are optional; empty categories are omitted when rendering.
type Changes struct {
	Added      []string `yaml:"added,omitempty"`
	Changed    []string `yaml:"changed,omitempty"`
	Deprecated []string `yaml:"deprecated,omitempty"`
	Removed    []string `yaml:"removed,omitempty"`
	Fixed      []string `yaml:"fixed,omitempty"`
	Security   []string `yaml:"security,omitempty"`
}

// Entry is a flattened view of a single changelog entry, used for
// querying and terminal display where the version and category context
// is needed alongside the text.
type Entry struct {
	Text     string `yaml:"text"`
	Category string `yaml:"category"`
	Version  string `yaml:"version"`
}

// ValidCategories returns the valid Keep a Changelog categories in their
// canonical rendering order.
func ValidCategories() []string {
	return []string{"added", "changed", "deprecated", "removed", "fixed", "security"}
}

// IsValidCategory reports whether name is a known category (case-insensitive).
func IsValidCategory(name string) bool {
	lower := strings.ToLower(name)
	for _, c := range ValidCategories() {
		if c == lower {
			return true
		}
	}
	return false
}

// IsUnreleased returns true if this section holds pending changes.
func (s Section) IsUnreleased() bool {
	return strings.EqualFold(s.Version, UnreleasedLabel)
}

// Entries returns a flattened list of all entries in this section,
// in canonical category order.
func (s Section) Entries() []Entry {
	entries := make([]Entry, 0, s.Changes.Count())
	for _, cat := range ValidCategories() {
		for _, text := range s.Changes.Category(cat) {
			entries = append(entries, Entry{Text: text, Category: cat, Version: s.Version})
		}
	}
	return entries
}

// IsEmpty returns true if no category has any entries.
func (c Changes) IsEmpty() bool {
	return c.Count() == 0
}

// Count returns the total number of entries across all categories.
func (c Changes) Count() int {
	return len(c.Added) +
		len(c.Changed) +
		len(c.Deprecated) +
		len(c.Removed) +
		len(c.Fixed) +
		len(c.Security)
}

// Category returns the entries for the named category.
// Unknown names return nil.
func (c Changes) Category(name string) []string {
	switch strings.ToLower(name) {
	case "added":
		return c.Added
	case "changed":
		return c.Changed
	case "deprecated":
		return c.Deprecated
	case "removed":
		return c.Removed
	case "fixed":
		return c.Fixed
	case "security":
		return c.Security
	default:
		return nil
	}
}

// Append adds text to the named category (case-insensitive).
// Unknown categories are a no-op returning false.
func (c *Changes) Append(name, text string) bool {
	switch strings.ToLower(name) {
	case "added":
		c.Added = append(c.Added, text)
	case "changed":
		c.Changed = append(c.Changed, text)
	case "deprecated":
		c.Deprecated = append(c.Deprecated, text)
	case "removed":
		c.Removed = append(c.Removed, text)
	case "fixed":
		c.Fixed = append(c.Fixed, text)
	case "security":
		c.Security = append(c.Security, text)
	default:
		return false
	}
	return true
}
