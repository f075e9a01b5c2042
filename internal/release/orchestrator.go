// Package release drives a single release attempt: it validates the
// changelog, derives the version bump, mutates the version and changelog
// artifacts as one logical unit, runs an external verification hook, and
// rolls both artifacts back to their pre-mutation snapshots when
// anything past the mutation point fails.
//
// The orchestrator is synchronous and single-operator: it takes no locks
// and assumes it is the only writer of the two artifacts. A process
// crash between the two persists in the mutating state leaves the
// artifacts inconsistent; this is a documented limitation, not remedied.
package release

import (
	"errors"
	"time"

	"github.com/relkit/relkit/internal/artifact"
	"github.com/relkit/relkit/internal/changelog"
	"github.com/relkit/relkit/internal/classify"
	"github.com/relkit/relkit/internal/semver"
)

// VerifyFunc is the external verification hook (e.g., a test suite run)
// invoked after both artifacts have been mutated. A non-nil return
// triggers rollback.
type VerifyFunc func() error

// Options configures a single release attempt.
type Options struct {
	// Override, when non-nil, replaces the classifier's suggestion
	// unconditionally. The caller is responsible for its sanity.
	Override *semver.BumpKind

	// ForcedVersion, when non-nil, bypasses classification and bumping
	// entirely: the given version is written to both artifacts.
	ForcedVersion *semver.Version

	// Date is the release date stamped on the promoted section.
	// The zero value means today.
	Date time.Time

	// Verify is the post-mutation verification hook; nil skips the
	// Verifying state.
	Verify VerifyFunc
}

// Result describes the outcome of a release attempt.
type Result struct {
	State    State
	Released bool
	Previous semver.Version
	Next     semver.Version
	Kind     semver.BumpKind
	Reason   string
}

// Orchestrator composes the changelog document, the classifier, and the
// version artifact into the release state machine.
type Orchestrator struct {
	versions  *artifact.VersionFile
	changelog *artifact.File
}

// New returns an orchestrator over the given version and changelog
// artifacts.
func New(versions *artifact.VersionFile, changelogFile *artifact.File) *Orchestrator {
	return &Orchestrator{versions: versions, changelog: changelogFile}
}

// Run executes one release attempt. A Result with Released=false and a
// nil error is the normal "nothing to release" termination. On any error
// after the mutation point both artifacts are restored before returning.
func (o *Orchestrator) Run(opts Options) (Result, error) {
	res := Result{State: StateValidating}

	doc, rawChangelog, err := o.loadChangelog()
	if err != nil {
		return res, err
	}
	if violations := doc.Validate(); len(violations) > 0 {
		return res, &ValidationError{Violations: violations}
	}

	current, err := o.versions.Current()
	if err != nil {
		return res, err
	}
	res.Previous = current

	next, done, err := o.resolve(doc, current, opts, &res)
	if done || err != nil {
		return res, err
	}
	res.Next = next

	snap, err := o.snapshot(rawChangelog)
	if err != nil {
		return res, err
	}

	res.State = StateMutating
	if err := o.mutate(doc, next, releaseDate(opts)); err != nil {
		return o.rollback(res, snap, err)
	}

	if opts.Verify != nil {
		res.State = StateVerifying
		if err := opts.Verify(); err != nil {
			res, rerr := o.rollback(res, snap, &VerificationError{Err: err})
			return res, rerr
		}
	}

	res.State = StateCommitted
	res.Released = true
	return res, nil
}

// loadChangelog reads and parses the changelog artifact, returning both
// the document and the raw bytes (kept for the pre-mutation snapshot).
func (o *Orchestrator) loadChangelog() (*changelog.Document, []byte, error) {
	raw, err := o.changelog.Read()
	if err != nil {
		return nil, nil, err
	}
	doc, err := changelog.Parse(string(raw))
	if err != nil {
		return nil, nil, err
	}
	return doc, raw, nil
}

// resolve determines the next version: forced version, override, or the
// classifier's suggestion. done=true signals a normal no-release stop.
func (o *Orchestrator) resolve(doc *changelog.Document, current semver.Version, opts Options, res *Result) (semver.Version, bool, error) {
	if opts.ForcedVersion != nil {
		res.State = StateResolving
		res.Reason = "version forced by caller"
		return *opts.ForcedVersion, false, nil
	}

	res.State = StateClassifying
	kind, reason := classify.Explain(doc.UnreleasedChanges())
	res.Kind = kind
	res.Reason = reason

	res.State = StateResolving
	if opts.Override != nil {
		kind = *opts.Override
		res.Kind = kind
		res.Reason = "bump type overridden by caller"
	}

	if kind == semver.BumpNone {
		res.Released = false
		return semver.Version{}, true, nil
	}

	next, err := current.Bump(kind)
	if err != nil {
		return semver.Version{}, false, err
	}
	return next, false, nil
}

// pair is the pre-mutation snapshot of both artifacts.
type pair struct {
	version   []byte
	changelog []byte
}

// snapshot captures both artifacts before any write so that a failure in
// Mutating or Verifying can restore a consistent pair.
func (o *Orchestrator) snapshot(rawChangelog []byte) (pair, error) {
	rawVersion, err := o.versions.Read()
	if err != nil {
		return pair{}, err
	}
	return pair{version: rawVersion, changelog: rawChangelog}, nil
}

// mutate persists the bumped version and the promoted changelog.
// Both writes form one logical unit; the caller rolls back on error.
func (o *Orchestrator) mutate(doc *changelog.Document, next semver.Version, date time.Time) error {
	if err := o.versions.Set(next); err != nil {
		return err
	}
	if err := doc.PromoteUnreleased(next, date); err != nil {
		return err
	}
	return o.changelog.Write([]byte(doc.Render()))
}

// rollback restores both artifacts from the snapshot and surfaces cause.
// A failed restore is joined onto the cause rather than swallowed.
func (o *Orchestrator) rollback(res Result, snap pair, cause error) (Result, error) {
	res.State = StateRolledBack
	res.Released = false

	var restoreErrs []error
	if err := o.versions.Write(snap.version); err != nil {
		restoreErrs = append(restoreErrs, err)
	}
	if err := o.changelog.Write(snap.changelog); err != nil {
		restoreErrs = append(restoreErrs, err)
	}
	if len(restoreErrs) > 0 {
		return res, errors.Join(append([]error{cause}, restoreErrs...)...)
	}
	return res, cause
}

func releaseDate(opts Options) time.Time {
	if opts.Date.IsZero() {
		return time.Now()
	}
	return opts.Date
}
