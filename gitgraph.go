package gitcash

import (
	"errors"
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage"
)

// GitGraph is the CommitGraph over a real git repository. The append path
// writes commit objects directly to the object store and never touches
// the worktree: the parent's tree is carried over unchanged.
type GitGraph struct {
	repo *git.Repository
}

var _ CommitGraph = (*GitGraph)(nil)

// OpenGitGraph opens the git repository at path.
func OpenGitGraph(path string) (*GitGraph, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, &RepoError{Msg: fmt.Sprintf("could not open repository at %q", path), Err: err}
	}
	return &GitGraph{repo: repo}, nil
}

// ResolveHead implements CommitGraph.
func (g *GitGraph) ResolveHead() (CommitID, error) {
	ref, err := g.repo.Head()
	if err != nil {
		return "", &RepoError{Msg: "could not resolve head", Err: err}
	}
	return CommitID(ref.Hash().String()), nil
}

// ReadCommit implements CommitGraph.
func (g *GitGraph) ReadCommit(id CommitID) (*Commit, error) {
	c, err := g.repo.CommitObject(plumbing.NewHash(string(id)))
	if err != nil {
		return nil, &RepoError{Msg: fmt.Sprintf("could not read commit %s", id), Err: err}
	}
	return gitCommit(c), nil
}

// Log implements CommitGraph.
func (g *GitGraph) Log() ([]*Commit, error) {
	head, err := g.ResolveHead()
	if err != nil {
		return nil, err
	}
	seen := make(map[CommitID]bool)
	stack := []CommitID{head}
	var commits []*Commit
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		c, err := g.ReadCommit(id)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
		stack = append(stack, c.Parents...)
	}
	return sortCommits(commits), nil
}

// CreateCommit implements CommitGraph.
func (g *GitGraph) CreateCommit(parent CommitID, message string, sig Signature) (CommitID, error) {
	parentHash := plumbing.NewHash(string(parent))
	parentCommit, err := g.repo.CommitObject(parentHash)
	if err != nil {
		return "", &RepoError{Msg: fmt.Sprintf("could not read parent commit %s", parent), Err: err}
	}

	when := sig.When
	if when.IsZero() {
		when = time.Now()
	}
	author := object.Signature{Name: sig.Name, Email: sig.Email, When: when}
	commit := &object.Commit{
		Author:       author,
		Committer:    author,
		Message:      message,
		TreeHash:     parentCommit.TreeHash,
		ParentHashes: []plumbing.Hash{parentHash},
	}

	obj := g.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return "", &RepoError{Msg: "could not encode commit object", Err: err}
	}
	hash, err := g.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return "", &RepoError{Msg: "could not write commit object", Err: err}
	}
	return CommitID(hash.String()), nil
}

// UpdateHead implements CommitGraph. The update is a check-and-set on the
// reference head currently resolves to, so a concurrent writer that got
// there first surfaces as ErrHeadMoved instead of a silent fork.
func (g *GitGraph) UpdateHead(old, new CommitID) error {
	ref, err := g.repo.Head()
	if err != nil {
		return &RepoError{Msg: "could not resolve head", Err: err}
	}
	if CommitID(ref.Hash().String()) != old {
		return ErrHeadMoved
	}
	newRef := plumbing.NewHashReference(ref.Name(), plumbing.NewHash(string(new)))
	oldRef := plumbing.NewHashReference(ref.Name(), plumbing.NewHash(string(old)))
	if err := g.repo.Storer.CheckAndSetReference(newRef, oldRef); err != nil {
		if errors.Is(err, storage.ErrReferenceHasChanged) {
			return ErrHeadMoved
		}
		return &RepoError{Msg: "could not update head", Err: err}
	}
	return nil
}

func gitCommit(c *object.Commit) *Commit {
	parents := make([]CommitID, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, CommitID(p.String()))
	}
	return &Commit{
		ID:      CommitID(c.Hash.String()),
		Parents: parents,
		Message: c.Message,
		When:    c.Committer.When,
	}
}
