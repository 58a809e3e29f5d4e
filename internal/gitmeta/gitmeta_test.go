package gitmeta

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverOutsideRepo(t *testing.T) {
	m := Discover(t.TempDir())
	assert.Empty(t, m.Root)
	assert.Empty(t, m.Branch)
	assert.Empty(t, m.Commit)
}

func TestDiscoverInRepo(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	p := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(p, []byte("hello\n"), 0644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("a.txt")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	require.NoError(t, err)

	// discovery from a subdirectory walks up to the repo
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))

	m := Discover(sub)
	assert.NotEmpty(t, m.Root)
	assert.NotEmpty(t, m.Commit)
	assert.LessOrEqual(t, len(m.Commit), 12)
}
