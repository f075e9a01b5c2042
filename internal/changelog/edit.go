package changelog

import (
	"fmt"
	"time"

	"github.com/relkit/relkit/internal/semver"
)

// NoChangesError is returned when a release promotion is attempted while
// the Unreleased section is empty or absent.
type NoChangesError struct{}

func (e *NoChangesError) Error() string {
	return "no unreleased changes: nothing to promote"
}

// AddEntry appends message under the given category in the Unreleased
// section, creating an empty Unreleased section at the top if none exists.
// The category is case-insensitive; unknown categories are rejected.
func (d *Document) AddEntry(category, message string) error {
	if !IsValidCategory(category) {
		return fmt.Errorf("invalid entry type %q: must be one of added, changed, deprecated, removed, fixed, security", category)
	}

	unreleased := d.Unreleased()
	if unreleased == nil {
		d.Sections = append([]Section{{Version: UnreleasedLabel}}, d.Sections...)
		unreleased = &d.Sections[0]
	}

	unreleased.Changes.Append(category, message)
	return nil
}

// PromoteUnreleased converts the Unreleased section into a dated release
// section labeled with version, and inserts a fresh empty Unreleased
// section above it. Fails with NoChangesError when there is nothing to
// promote.
func (d *Document) PromoteUnreleased(version semver.Version, date time.Time) error {
	unreleased := d.Unreleased()
	if unreleased == nil || unreleased.Changes.IsEmpty() {
		return &NoChangesError{}
	}

	unreleased.Version = version.String()
	unreleased.Date = date.Format("2006-01-02")
	d.Sections = append([]Section{{Version: UnreleasedLabel}}, d.Sections...)
	return nil
}
