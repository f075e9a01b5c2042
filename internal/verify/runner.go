// Package verify runs the external verification command (typically a
// test suite) that gates a release. The runner is handed to the release
// orchestrator as its verification hook.
package verify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// outputTailLines bounds how much command output is echoed on failure.
const outputTailLines = 30

// Runner executes a shell verification command.
type Runner struct {
	// Command is the shell command to run (via "sh -c").
	Command string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Out receives progress and failure output; defaults to os.Stderr.
	Out io.Writer
}

// Run executes the verification command, showing a spinner while it
// runs when attached to a terminal. On failure the tail of the command
// output is written to Out and an error describing the failure is
// returned.
func (r *Runner) Run(ctx context.Context) error {
	out := r.Out
	if out == nil {
		out = os.Stderr
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", r.Command)
	cmd.Dir = r.Dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	stop := startSpinner(r.Command)
	err := cmd.Run()
	stop()

	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("verification command %q: %w", r.Command, ctx.Err())
	}

	fmt.Fprint(out, outputTail(buf.String()))
	return fmt.Errorf("verification command %q failed: %w", r.Command, err)
}

// Hook adapts the runner to the orchestrator's hook signature.
func (r *Runner) Hook(ctx context.Context) func() error {
	return func() error {
		return r.Run(ctx)
	}
}

// startSpinner starts a progress spinner on stderr when it is a
// terminal, and returns a function that stops it. A no-op stop is
// returned for non-interactive runs.
func startSpinner(command string) func() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " verifying: " + command
	s.Start()
	return s.Stop
}

// outputTail returns the last outputTailLines lines of s.
func outputTail(s string) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > outputTailLines {
		lines = lines[len(lines)-outputTailLines:]
	}
	return strings.Join(lines, "\n") + "\n"
}
