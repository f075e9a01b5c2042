package changelog

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/relkit/relkit/internal/semver"
)

// FormatError represents an unparseable changelog structure.
// Line is 1-based; zero means the error is not tied to a single line.
type FormatError struct {
	Line    int
	Message string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("changelog line %d: %s", e.Line, e.Message)
	}
	return "changelog: " + e.Message
}

var (
	sectionPattern  = regexp.MustCompile(`^## \[([^\]]+)\](?:\s*-\s*(.*?)\s*)?$`)
	categoryPattern = regexp.MustCompile(`^### (.+?)\s*$`)
	linkRefPattern  = regexp.MustCompile(`^\[[^\]]+\]:\s*\S+`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Load reads and parses a CHANGELOG.md file from the given path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	return Parse(string(data))
}

// Parse parses changelog text into a Document.
// It fails with FormatError if headings are malformed, more than one
// Unreleased section exists, Unreleased is not the first section, or any
// dated section's version or date token cannot be parsed.
func Parse(text string) (*Document, error) {
	doc := &Document{}

	var (
		preamble []string
		footer   []string
		current  *Section
		category string
		seenUnreleased bool
	)

	flush := func() {
		if current != nil {
			doc.Sections = append(doc.Sections, *current)
			current = nil
			category = ""
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			flush()
			section, err := newSection(m[1], m[2], lineNum)
			if err != nil {
				return nil, err
			}
			if section.IsUnreleased() {
				if seenUnreleased {
					return nil, &FormatError{Line: lineNum, Message: "duplicate [Unreleased] section"}
				}
				if len(doc.Sections) > 0 {
					return nil, &FormatError{Line: lineNum, Message: "[Unreleased] section must be the first section"}
				}
				seenUnreleased = true
			}
			current = section
			continue
		}

		if strings.HasPrefix(line, "## ") {
			return nil, &FormatError{Line: lineNum, Message: fmt.Sprintf("malformed section heading %q (expected: ## [X.Y.Z] - YYYY-MM-DD)", line)}
		}

		if current == nil {
			preamble = append(preamble, line)
			continue
		}

		if m := categoryPattern.FindStringSubmatch(line); m != nil {
			name := m[1]
			if !IsValidCategory(name) {
				return nil, &FormatError{Line: lineNum, Message: fmt.Sprintf("unknown category %q (valid: %s)", name, strings.Join(ValidCategories(), ", "))}
			}
			category = strings.ToLower(name)
			continue
		}

		if entry, ok := strings.CutPrefix(line, "- "); ok {
			if category == "" {
				return nil, &FormatError{Line: lineNum, Message: "entry outside a category sub-heading"}
			}
			current.Changes.Append(category, entry)
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		if linkRefPattern.MatchString(line) {
			footer = append(footer, line)
			continue
		}

		return nil, &FormatError{Line: lineNum, Message: fmt.Sprintf("unrecognized content %q", line)}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning changelog: %w", err)
	}
	flush()

	doc.Preamble = strings.TrimRight(strings.Join(preamble, "\n"), "\n \t")
	doc.Footer = strings.Join(footer, "\n")
	return doc, nil
}

// newSection builds a Section from a matched heading, validating the
// version and date tokens.
func newSection(label, date string, line int) (*Section, error) {
	if strings.EqualFold(label, UnreleasedLabel) {
		if date != "" {
			return nil, &FormatError{Line: line, Message: "[Unreleased] section must not carry a release date"}
		}
		return &Section{Version: UnreleasedLabel}, nil
	}

	if !semver.IsValid(label) {
		return nil, &FormatError{Line: line, Message: fmt.Sprintf("invalid version label %q (expected: X.Y.Z)", label)}
	}
	if date == "" {
		return nil, &FormatError{Line: line, Message: fmt.Sprintf("section [%s] is missing a release date", label)}
	}
	if !datePattern.MatchString(date) {
		return nil, &FormatError{Line: line, Message: fmt.Sprintf("invalid release date %q (expected: YYYY-MM-DD)", date)}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &FormatError{Line: line, Message: fmt.Sprintf("invalid release date %q: not a calendar date", date)}
	}

	return &Section{Version: label, Date: date}, nil
}
