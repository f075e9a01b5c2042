package cli

import (
	"fmt"

	"github.com/relkit/relkit/internal/artifact"
	"github.com/relkit/relkit/internal/config"
	"github.com/relkit/relkit/internal/errors"
	"github.com/relkit/relkit/internal/gitstate"
	"github.com/relkit/relkit/internal/output"
	"github.com/relkit/relkit/internal/release"
	"github.com/relkit/relkit/internal/semver"
	"github.com/relkit/relkit/internal/verify"
	"github.com/spf13/cobra"
)

var (
	releaseTypeFlag       string
	releaseVersionFlag    string
	releaseVerifyCmdFlag  string
	releaseSkipVerifyFlag bool
	releaseAllowDirtyFlag bool
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Cut a release: bump the version and promote the changelog",
	Long: `Run the full release step: validate the changelog, derive the version
bump from the [Unreleased] entries, write the next version to the version
file, promote [Unreleased] into a dated section, and run the verification
command. If verification or any write fails, both files are restored to
their pre-release state.

By default the bump kind is derived from the pending entries. --type
overrides the derived kind; --version skips derivation entirely and
promotes the changelog under the given version.

Examples:
  relkit release                           # Auto-derived bump
  relkit release --type minor              # Explicit bump kind
  relkit release --version 2.0.0           # Exact version, no derivation
  relkit release --verify-cmd "pytest"     # Gate the release on a test run
  relkit release --skip-verify             # No verification hook`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd)
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().StringVarP(&releaseTypeFlag, "type", "t", "", "Override the bump type (major, minor, patch)")
	releaseCmd.Flags().StringVarP(&releaseVersionFlag, "version", "v", "", "Release exactly this version, bypassing classification")
	releaseCmd.Flags().StringVar(&releaseVerifyCmdFlag, "verify-cmd", "", "Verification command (overrides config verify_cmd)")
	releaseCmd.Flags().BoolVar(&releaseSkipVerifyFlag, "skip-verify", false, "Skip the verification hook")
	releaseCmd.Flags().BoolVar(&releaseAllowDirtyFlag, "allow-dirty", false, "Allow releasing with uncommitted changes")
	releaseCmd.MarkFlagsMutuallyExclusive("type", "version")
	releaseCmd.MarkFlagsMutuallyExclusive("verify-cmd", "skip-verify")
}

func runRelease(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := checkWorktree(cfg); err != nil {
		return err
	}

	opts, err := buildReleaseOptions(cmd, cfg)
	if err != nil {
		return err
	}

	orch := release.New(
		artifact.NewVersionFile(cfg.VersionFile),
		artifact.NewFile(cfg.ChangelogPath),
	)

	res, err := orch.Run(opts)
	if err != nil {
		return err
	}

	reportRelease(cmd, cfg, res)
	return nil
}

// checkWorktree refuses to release from a dirty worktree unless allowed.
// Running outside a git repository is fine: there is nothing to check.
func checkWorktree(cfg *config.Configuration) error {
	if releaseAllowDirtyFlag || cfg.AllowDirty || !gitstate.IsRepository("") {
		return nil
	}

	clean, err := gitstate.WorktreeClean("")
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "checking worktree state")
	}
	if !clean {
		return errors.NewRuntimeError(
			"worktree has uncommitted changes",
			"commit or stash your changes before releasing",
			"or pass --allow-dirty to release anyway")
	}
	return nil
}

// buildReleaseOptions translates flags and config into orchestrator options.
func buildReleaseOptions(cmd *cobra.Command, cfg *config.Configuration) (release.Options, error) {
	var opts release.Options

	if releaseVersionFlag != "" {
		forced, err := semver.Parse(releaseVersionFlag)
		if err != nil {
			return opts, err
		}
		opts.ForcedVersion = &forced
	} else if releaseTypeFlag != "" {
		kind, err := semver.ParseBumpKind(releaseTypeFlag)
		if err != nil || kind == semver.BumpNone {
			return opts, errors.NewArgumentError(
				fmt.Sprintf("invalid bump type %q", releaseTypeFlag),
				"use one of: major, minor, patch")
		}
		opts.Override = &kind
	}

	verifyCmd := cfg.VerifyCmd
	if releaseVerifyCmdFlag != "" {
		verifyCmd = releaseVerifyCmdFlag
	}
	if !releaseSkipVerifyFlag && verifyCmd != "" {
		runner := &verify.Runner{Command: verifyCmd, Out: cmd.ErrOrStderr()}
		opts.Verify = runner.Hook(cmd.Context())
	}

	return opts, nil
}

// reportRelease prints the outcome of a completed orchestrator run.
func reportRelease(cmd *cobra.Command, cfg *config.Configuration, res release.Result) {
	out := cmd.OutOrStdout()

	if !res.Released {
		fmt.Fprintf(out, "nothing to release: %s\n", res.Reason)
		return
	}

	output.PrintSuccess(out, fmt.Sprintf("released %s (was %s)", res.Next, res.Previous))
	output.PrintField(out, "Version file", cfg.VersionFile)
	output.PrintField(out, "Changelog", cfg.ChangelogPath)

	if branch, commit, err := gitstate.Describe(""); err == nil {
		where := commit
		if branch != "" {
			where = branch + "@" + commit
		}
		output.PrintField(out, "Repository", where)
		fmt.Fprintf(out, "\nnext: commit the release, then tag v%s and push\n", res.Next)
	}
}
