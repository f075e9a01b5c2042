package release

import (
	"fmt"
	"strings"

	"github.com/relkit/relkit/internal/changelog"
)

// ValidationError reports changelog invariant violations found during
// the Validating state. Nothing has been mutated when it is returned.
type ValidationError struct {
	Violations []changelog.Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("changelog validation failed: %s", strings.Join(msgs, "; "))
}

// VerificationError reports a failed post-mutation verification hook.
// Both artifacts have been restored to their pre-mutation snapshots by
// the time it is returned.
type VerificationError struct {
	Err error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed (artifacts rolled back): %v", e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}
