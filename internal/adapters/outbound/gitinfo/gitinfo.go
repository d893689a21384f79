package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/shellcon/aquacheck/internal/domain"
)

// Adapter implements domain.GitInfo using go-git. Workspaces nested inside
// a repository resolve to the enclosing repository.
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

// Describe returns HEAD's commit, branch and whether the worktree has
// uncommitted changes.
func (g *Adapter) Describe(path string) (domain.Revision, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return domain.Revision{}, fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return domain.Revision{}, fmt.Errorf("getting HEAD: %w", err)
	}

	rev := domain.Revision{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}

	wt, err := repo.Worktree()
	if err != nil {
		return rev, nil
	}
	status, err := wt.Status()
	if err != nil {
		return domain.Revision{}, fmt.Errorf("reading worktree status: %w", err)
	}
	rev.Dirty = !status.IsClean()
	return rev, nil
}
