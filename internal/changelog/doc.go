// Package changelog models a Keep a Changelog formatted CHANGELOG.md.
//
// This package implements:
//   - Parsing the fixed document shape (## [Unreleased], ## [X.Y.Z] - date,
//     ### Category sub-headings, "- entry" lines)
//   - Structural edits: appending entries and promoting the Unreleased
//     section into a dated release
//   - Invariant validation and canonical markdown rendering
//   - Terminal-friendly colorized views of entries
//
// The document model is intentionally narrow: it understands exactly one
// document shape (https://keepachangelog.com/en/1.1.0/) with the six
// standard categories, and strict MAJOR.MINOR.PATCH version labels.
// Text before the first section heading and trailing link-reference lines
// are preserved verbatim across a parse/render round trip.
package changelog
