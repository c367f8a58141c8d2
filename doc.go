// Package gitcash implements an append-only payment ledger whose durable
// storage is a git commit history. Every transaction is embedded as a
// TOML block in a commit message; the ledger's state (accounts and
// balances) is always a pure, deterministic function of the commit
// history.
//
// The core pieces are:
//   - Account and Transaction: immutable value types with a canonical
//     string encoding ("type:name") and a commit-message codec.
//   - CommitGraph: the storage substrate, an explicit interface over an
//     append-only commit graph with a mutable head reference. GitGraph
//     implements it over a real git repository (via go-git), MemoryGraph
//     in memory for tests.
//   - Ledger: opens a repository, materializes the chronological
//     transaction sequence once, derives account sets and balances as
//     pure folds, and appends new transactions as fast-forward commits.
//
// This package is the foundational logic for the `gitcash` command-line
// tool.
package gitcash
