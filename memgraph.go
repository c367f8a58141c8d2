package gitcash

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"
)

// MemoryGraph is an in-memory CommitGraph. It backs the engine tests and
// lets library users exercise a ledger without a git repository on disk.
type MemoryGraph struct {
	commits map[CommitID]*Commit
	head    CommitID
	now     time.Time
}

var _ CommitGraph = (*MemoryGraph)(nil)

// NewMemoryGraph creates an empty graph with an unborn head.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		commits: make(map[CommitID]*Commit),
		now:     time.Unix(1700000000, 0).UTC(),
	}
}

// ResolveHead implements CommitGraph.
func (g *MemoryGraph) ResolveHead() (CommitID, error) {
	if g.head == "" {
		return "", &RepoError{Msg: "head reference is unborn"}
	}
	return g.head, nil
}

// ReadCommit implements CommitGraph.
func (g *MemoryGraph) ReadCommit(id CommitID) (*Commit, error) {
	c, ok := g.commits[id]
	if !ok {
		return nil, &RepoError{Msg: fmt.Sprintf("unknown commit %s", id)}
	}
	return c, nil
}

// Log implements CommitGraph.
func (g *MemoryGraph) Log() ([]*Commit, error) {
	if g.head == "" {
		return nil, nil
	}
	reachable := make(map[CommitID]bool)
	stack := []CommitID{g.head}
	var commits []*Commit
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable[id] {
			continue
		}
		reachable[id] = true
		c, err := g.ReadCommit(id)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
		stack = append(stack, c.Parents...)
	}
	return sortCommits(commits), nil
}

// CreateCommit implements CommitGraph. An empty parent creates a root
// commit.
func (g *MemoryGraph) CreateCommit(parent CommitID, message string, sig Signature) (CommitID, error) {
	when := sig.When
	if when.IsZero() {
		when = g.tick()
	}
	var parents []CommitID
	if parent != "" {
		if _, ok := g.commits[parent]; !ok {
			return "", &RepoError{Msg: fmt.Sprintf("unknown parent commit %s", parent)}
		}
		parents = []CommitID{parent}
	}
	return g.add(parents, message, when), nil
}

// UpdateHead implements CommitGraph. An empty old id matches an unborn
// head.
func (g *MemoryGraph) UpdateHead(old, new CommitID) error {
	if g.head != old {
		return ErrHeadMoved
	}
	if _, ok := g.commits[new]; !ok {
		return &RepoError{Msg: fmt.Sprintf("unknown commit %s", new)}
	}
	g.head = new
	return nil
}

// Seed creates a commit on top of the current head and advances head to
// it. It is a convenience for building test and example histories.
func (g *MemoryGraph) Seed(message string) CommitID {
	var parents []CommitID
	if g.head != "" {
		parents = []CommitID{g.head}
	}
	id := g.add(parents, message, g.tick())
	g.head = id
	return id
}

// SeedAt creates a commit with explicit parents and commit time, without
// moving head. It allows tests to build arbitrary merge shapes.
func (g *MemoryGraph) SeedAt(when time.Time, message string, parents ...CommitID) CommitID {
	return g.add(parents, message, when)
}

// SetHead forces the head reference, bypassing the optimistic check.
func (g *MemoryGraph) SetHead(id CommitID) { g.head = id }

func (g *MemoryGraph) add(parents []CommitID, message string, when time.Time) CommitID {
	h := sha1.New()
	fmt.Fprintf(h, "commit %s %d\n", message, when.UnixNano())
	for _, p := range parents {
		fmt.Fprintf(h, "parent %s\n", p)
	}
	id := CommitID(hex.EncodeToString(h.Sum(nil)))
	g.commits[id] = &Commit{ID: id, Parents: parents, Message: message, When: when}
	return id
}

// tick returns a strictly increasing commit time so seeded histories have
// stable, distinct timestamps.
func (g *MemoryGraph) tick() time.Time {
	g.now = g.now.Add(time.Second)
	return g.now
}
