package core

import (
	"errors"
	"fmt"

	git "gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing/object"
)

// MissingPaths returns the paths that do not exist in the HEAD tree of the
// git repository at repoPath, in input order. It is a diagnostic: callers
// report the result and never drop comments because of it.
func MissingPaths(repoPath string, paths []string) ([]string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository %s: %w", repoPath, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to load HEAD commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load HEAD tree: %w", err)
	}

	var missing []string
	for _, p := range paths {
		_, err := tree.File(p)
		if err == nil {
			continue
		}
		if errors.Is(err, object.ErrFileNotFound) ||
			errors.Is(err, object.ErrDirectoryNotFound) ||
			errors.Is(err, object.ErrEntryNotFound) {
			missing = append(missing, p)
			continue
		}
		return nil, fmt.Errorf("failed to look up %s: %w", p, err)
	}
	return missing, nil
}
