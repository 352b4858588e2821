package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// History answers ancestry questions through go-git, reading the object
// database directly instead of parsing porcelain output. The executed
// merge's classification stays authoritative; History only feeds the
// advisory preview and the merged-branch cleanup.
type History struct {
	root string
}

// NewHistory creates a History for the repository rooted at root.
func NewHistory(root string) *History {
	return &History{root: root}
}

// Comparer is the ancestry interface flows depend on, so tests can
// script answers without a real repository.
type Comparer interface {
	IsAncestor(ancestor, descendant string) (bool, error)
	MergeBase(ref1, ref2 string) (string, error)
}

func (h *History) open() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(h.root, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return repo, nil
}

// IsAncestor reports whether ancestor's commit is reachable from
// descendant's commit. Equal refs count as ancestors, which makes a
// branch "fully merged" into itself.
func (h *History) IsAncestor(ancestor, descendant string) (bool, error) {
	repo, err := h.open()
	if err != nil {
		return false, err
	}

	ancestorHash, err := resolveRefHash(repo, ancestor)
	if err != nil {
		return false, fmt.Errorf("failed to resolve ancestor ref: %w", err)
	}
	descendantHash, err := resolveRefHash(repo, descendant)
	if err != nil {
		return false, fmt.Errorf("failed to resolve descendant ref: %w", err)
	}

	if ancestorHash == descendantHash {
		return true, nil
	}

	ancestorCommit, err := repo.CommitObject(ancestorHash)
	if err != nil {
		return false, fmt.Errorf("failed to get ancestor commit: %w", err)
	}
	descendantCommit, err := repo.CommitObject(descendantHash)
	if err != nil {
		return false, fmt.Errorf("failed to get descendant commit: %w", err)
	}

	return ancestorCommit.IsAncestor(descendantCommit)
}

// MergeBase returns the most recent common ancestor of the two refs.
func (h *History) MergeBase(ref1, ref2 string) (string, error) {
	repo, err := h.open()
	if err != nil {
		return "", err
	}

	hash1, err := resolveRefHash(repo, ref1)
	if err != nil {
		return "", fmt.Errorf("failed to resolve ref: %w", err)
	}
	hash2, err := resolveRefHash(repo, ref2)
	if err != nil {
		return "", fmt.Errorf("failed to resolve ref: %w", err)
	}

	commit1, err := repo.CommitObject(hash1)
	if err != nil {
		return "", fmt.Errorf("failed to get commit: %w", err)
	}
	commit2, err := repo.CommitObject(hash2)
	if err != nil {
		return "", fmt.Errorf("failed to get commit: %w", err)
	}

	mergeBases, err := commit1.MergeBase(commit2)
	if err != nil {
		return "", fmt.Errorf("failed to find merge base: %w", err)
	}
	if len(mergeBases) == 0 {
		return "", fmt.Errorf("no merge base between %s and %s", ref1, ref2)
	}

	return mergeBases[0].Hash.String(), nil
}

// resolveRefHash resolves a name the way operators write it: full ref
// (HEAD included), local branch, then remote-tracking branch.
func resolveRefHash(repo *gogit.Repository, ref string) (plumbing.Hash, error) {
	if r, err := repo.Reference(plumbing.ReferenceName(ref), true); err == nil {
		return r.Hash(), nil
	}
	if r, err := repo.Reference(plumbing.ReferenceName("refs/heads/"+ref), true); err == nil {
		return r.Hash(), nil
	}
	if r, err := repo.Reference(plumbing.ReferenceName("refs/remotes/"+ref), true); err == nil {
		return r.Hash(), nil
	}
	return plumbing.ZeroHash, fmt.Errorf("could not resolve ref %q", ref)
}
