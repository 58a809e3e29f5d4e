// Package gitmeta annotates audit records with repository context so a
// finding can be traced back to the branch and commit it surfaced on.
package gitmeta

import (
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// Meta is the repository context attached to audit records. All fields are
// best-effort; a path outside any repository yields the zero value.
type Meta struct {
	Root   string `json:"root,omitempty"`
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// Discover walks up from path looking for a .git directory and, if found,
// reads HEAD. Errors are deliberately swallowed: monitoring roots that are
// not repositories is an ordinary case, not a failure.
func Discover(path string) Meta {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Meta{}
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Meta{}
	}

	var m Meta
	if wt, err := repo.Worktree(); err == nil {
		m.Root = wt.Filesystem.Root()
	}
	head, err := repo.Head()
	if err != nil {
		return m
	}
	if head.Name().IsBranch() {
		m.Branch = head.Name().Short()
	}
	h := head.Hash().String()
	if len(h) > 12 {
		h = h[:12]
	}
	m.Commit = h
	return m
}

// RepoRoot returns the enclosing repository root for path, or "" when the
// path is not inside a repository.
func RepoRoot(path string) string {
	return Discover(path).Root
}
