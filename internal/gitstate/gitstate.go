// Package gitstate provides read-only git repository checks for the
// release preflight using go-git, without requiring a git CLI
// installation. Version-control actions themselves (commit, tag, push)
// are left to the pipeline that runs after a release commits.
package gitstate

import (
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"
)

// openRepo opens the repository containing path, traversing up the
// directory tree to find the repository root. Empty path means the
// current working directory.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsRepository checks if path is within a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// WorktreeClean reports whether the worktree has no uncommitted changes.
func WorktreeClean(path string) (bool, error) {
	repo, err := openRepo(path)
	if err != nil {
		return false, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("getting worktree status: %w", err)
	}
	return status.IsClean(), nil
}

// Describe returns the current branch name and short commit hash.
// Branch is empty in detached HEAD state.
func Describe(path string) (branch, commit string, err error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	if head.Name().IsBranch() {
		branch = head.Name().Short()
	}
	return branch, head.Hash().String()[:7], nil
}
