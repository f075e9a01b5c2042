package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/relkit/relkit/internal/errors"
	"github.com/relkit/relkit/internal/release"
	"github.com/relkit/relkit/internal/semver"
)

// Exit codes for the relkit CLI.
// These codes support programmatic composition in release pipelines.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitFailure indicates a generic failure (parse errors, I/O errors,
	// changelog validation failures).
	ExitFailure = 1

	// ExitVerificationFailed indicates the release verification hook
	// failed and the artifacts were rolled back.
	ExitVerificationFailed = 2

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 3
)

// ExitError carries an explicit process exit code through the cobra
// error return path. An empty Message means the command already printed
// its own diagnostics; Execute will not print it again.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Message
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// ExitCode resolves the process exit code for an error returned by
// Execute. nil maps to ExitSuccess.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	var verificationErr *release.VerificationError
	if stderrors.As(err, &verificationErr) {
		return ExitVerificationFailed
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil && cliErr.Category == errors.Argument {
		return ExitInvalidArguments
	}
	var versionErr *semver.VersionFormatError
	if stderrors.As(err, &versionErr) {
		return ExitInvalidArguments
	}

	return ExitFailure
}
