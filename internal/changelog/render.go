package changelog

import (
	"fmt"
	"strings"
)

// DefaultPreamble is the standard Keep a Changelog header used for
// documents created from scratch.
const DefaultPreamble = `# Changelog

All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).`

// New returns an empty document carrying the standard header and an
// empty Unreleased section.
func New() *Document {
	return &Document{
		Preamble: DefaultPreamble,
		Sections: []Section{{Version: UnreleasedLabel}},
	}
}

// Render serializes the document to canonical Keep a Changelog markdown.
// Rendering is idempotent, and re-parsing the output yields a document
// structurally equal to the original.
func (d *Document) Render() string {
	var b strings.Builder

	if d.Preamble != "" {
		b.WriteString(strings.TrimRight(d.Preamble, "\n \t"))
		b.WriteString("\n")
		if len(d.Sections) > 0 || d.Footer != "" {
			b.WriteString("\n")
		}
	}

	for i, s := range d.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionHeading(s))
		b.WriteString("\n")
		renderChanges(&b, s.Changes)
	}

	if d.Footer != "" {
		if len(d.Sections) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.TrimRight(d.Footer, "\n \t"))
		b.WriteString("\n")
	}

	return b.String()
}

// sectionHeading formats the "## [...]" heading line for a section.
func sectionHeading(s Section) string {
	if s.IsUnreleased() {
		return "## [" + UnreleasedLabel + "]"
	}
	return fmt.Sprintf("## [%s] - %s", s.Version, s.Date)
}

// renderChanges writes all non-empty categories in canonical order.
func renderChanges(b *strings.Builder, c Changes) {
	for _, cat := range ValidCategories() {
		entries := c.Category(cat)
		if len(entries) == 0 {
			continue
		}
		b.WriteString("\n### ")
		b.WriteString(titleCase(cat))
		b.WriteString("\n")
		for _, entry := range entries {
			b.WriteString("- ")
			b.WriteString(entry)
			b.WriteString("\n")
		}
	}
}

// titleCase capitalizes the first letter of a category name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
