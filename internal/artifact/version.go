package artifact

import (
	"fmt"
	"regexp"

	"github.com/relkit/relkit/internal/semver"
)

// versionTokenPattern matches the version declaration token, e.g.
// version='1.0.0' or version="1.0.0". The submatch covers only the
// version string so a rewrite preserves the surrounding quote style.
var versionTokenPattern = regexp.MustCompile(`version=['"](\d+\.\d+\.\d+)['"]`)

// VersionFile reads and rewrites the version declaration artifact
// (e.g., a setup.py). Only the version token itself is ever modified;
// every other byte of the file is preserved.
type VersionFile struct {
	*File
}

// NewVersionFile returns a version artifact backed by the file at path.
func NewVersionFile(path string) *VersionFile {
	return &VersionFile{File: NewFile(path)}
}

// Current extracts the declared version from the artifact.
func (f *VersionFile) Current() (semver.Version, error) {
	data, err := f.Read()
	if err != nil {
		return semver.Version{}, err
	}

	m := versionTokenPattern.FindSubmatch(data)
	if m == nil {
		return semver.Version{}, fmt.Errorf("no version token found in %s (expected: version='X.Y.Z')", f.Path())
	}
	return semver.Parse(string(m[1]))
}

// Set rewrites the first version token in place to declare v,
// leaving the rest of the file byte-for-byte identical.
func (f *VersionFile) Set(v semver.Version) error {
	data, err := f.Read()
	if err != nil {
		return err
	}

	loc := versionTokenPattern.FindSubmatchIndex(data)
	if loc == nil {
		return fmt.Errorf("no version token found in %s (expected: version='X.Y.Z')", f.Path())
	}

	// loc[2]:loc[3] bounds the version string submatch.
	updated := make([]byte, 0, len(data))
	updated = append(updated, data[:loc[2]]...)
	updated = append(updated, v.String()...)
	updated = append(updated, data[loc[3]:]...)

	return f.Write(updated)
}
