package gitcash

import (
	"sort"
	"time"
)

// CommitID identifies a commit in the underlying graph (hex object hash).
type CommitID string

// Signature is the identity recorded on commits created by the append
// path.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Commit is the engine's view of a commit: an immutable node with parent
// links and a message. Trees and file contents are opaque to the ledger.
type Commit struct {
	ID      CommitID
	Parents []CommitID
	Message string
	When    time.Time
}

// CommitGraph is the storage substrate of the ledger: an append-only
// commit graph with a mutable head reference. Implementations must be
// consistent with each other on ordering, so Log is expected to return
// the order produced by sortCommits over the reachable set.
type CommitGraph interface {
	// ResolveHead returns the commit the head reference points at.
	ResolveHead() (CommitID, error)
	// ReadCommit returns a single commit by id.
	ReadCommit(id CommitID) (*Commit, error)
	// Log returns every commit reachable from head, ordered so that
	// ancestors always precede descendants (topological order, reversed
	// to oldest-first, with deterministic tie-breaking).
	Log() ([]*Commit, error)
	// CreateCommit writes a new commit with a single parent and the
	// given message and identity. The parent's tree is carried over
	// unchanged; the head reference is not touched.
	CreateCommit(parent CommitID, message string, sig Signature) (CommitID, error)
	// UpdateHead advances head from old to new. If head no longer points
	// at old, it fails with ErrHeadMoved and leaves the reference alone.
	UpdateHead(old, new CommitID) error
}

// sortCommits orders a reachable commit set topologically with ancestors
// first. Among commits with no ordering constraint (siblings of a merge),
// the oldest commit time wins, then the id, so the fold order is
// deterministic regardless of merge structure.
func sortCommits(commits []*Commit) []*Commit {
	byID := make(map[CommitID]*Commit, len(commits))
	for _, c := range commits {
		byID[c.ID] = c
	}

	// Pending parent count per commit, restricted to the reachable set.
	pending := make(map[CommitID]int, len(commits))
	children := make(map[CommitID][]*Commit)
	for _, c := range commits {
		for _, p := range c.Parents {
			if _, ok := byID[p]; ok {
				pending[c.ID]++
				children[p] = append(children[p], c)
			}
		}
	}

	var ready []*Commit
	for _, c := range commits {
		if pending[c.ID] == 0 {
			ready = append(ready, c)
		}
	}

	ordered := make([]*Commit, 0, len(commits))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			if !ready[i].When.Equal(ready[j].When) {
				return ready[i].When.Before(ready[j].When)
			}
			return ready[i].ID < ready[j].ID
		})
		next := ready[0]
		ready = ready[1:]
		ordered = append(ordered, next)
		for _, child := range children[next.ID] {
			pending[child.ID]--
			if pending[child.ID] == 0 {
				ready = append(ready, child)
			}
		}
	}
	return ordered
}
