// Package vcs reads the version control revision a build was made from.
package vcs

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Info describes the checkout a directory belongs to.
type Info struct {
	Commit string
	Branch string
	Dirty  bool
}

// Short returns the first eight characters of the commit hash.
func (i Info) Short() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

// Describe reads the repository containing dir. It returns a zero Info and
// no error when dir is not inside a repository or the repository has no
// commits yet.
func Describe(dir string) (Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return Info{}, nil
	}
	if err != nil {
		return Info{}, fmt.Errorf("open repository at %s: %w", dir, err)
	}

	ref, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return Info{}, nil
	}
	if err != nil {
		return Info{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	info := Info{Commit: ref.Hash().String()}
	if ref.Name().IsBranch() {
		info.Branch = ref.Name().Short()
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to be dirty.
		return info, nil
	}
	status, err := wt.Status()
	if err != nil {
		return info, fmt.Errorf("worktree status: %w", err)
	}
	info.Dirty = !status.IsClean()
	return info, nil
}

// Revision returns the short commit of dir's repository, suffixed with
// "-dirty" when the worktree has uncommitted changes. It returns "" outside
// a repository.
func Revision(dir string) (string, error) {
	info, err := Describe(dir)
	if err != nil || info.Commit == "" {
		return "", err
	}
	if info.Dirty {
		return info.Short() + "-dirty", nil
	}
	return info.Short(), nil
}
