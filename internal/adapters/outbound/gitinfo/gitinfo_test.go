package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shellcon/aquacheck/internal/adapters/outbound/gitinfo"
)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func commitFile(t *testing.T, dir string, repo *git.Repository, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	hash, err := wt.Commit("lab snapshot", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestDescribe_Clean(t *testing.T) {
	dir, repo := initRepo(t)
	want := commitFile(t, dir, repo, "services/aqua-monitor/src/challenges.rs", "fn main() {}\n")

	rev, err := gitinfo.New().Describe(dir)
	require.NoError(t, err)
	assert.Len(t, rev.Commit, 40, "should be a full SHA-1 hash")
	assert.Equal(t, want, rev.Commit)
	assert.Equal(t, want[:7], rev.Short())
	assert.Equal(t, "master", rev.Branch)
	assert.False(t, rev.Dirty)
}

func TestDescribe_FromSubdirectory(t *testing.T) {
	dir, repo := initRepo(t)
	want := commitFile(t, dir, repo, "services/aqua-brain/src/challenges.rs", "fn main() {}\n")

	rev, err := gitinfo.New().Describe(filepath.Join(dir, "services", "aqua-brain"))
	require.NoError(t, err)
	assert.Equal(t, want, rev.Commit)
}

func TestDescribe_Dirty(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "challenges.rs", "fn main() {}\n")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "challenges.rs"), []byte("fn main() { edited(); }\n"), 0644))
	rev, err := gitinfo.New().Describe(dir)
	require.NoError(t, err)
	assert.True(t, rev.Dirty)
	assert.Equal(t, "master@"+rev.Short()+" (modified)", rev.Label())
}

func TestDescribe_NotGitRepo(t *testing.T) {
	_, err := gitinfo.New().Describe(t.TempDir())
	assert.Error(t, err)
}

func TestDescribe_NoCommits(t *testing.T) {
	dir, _ := initRepo(t)
	_, err := gitinfo.New().Describe(dir)
	assert.Error(t, err)
}
