package gitcash

import (
	"log/slog"
	"sort"
)

// Ledger is a gitcash repository and all its transactions.
//
// Opening a ledger materializes the full transaction sequence once, in
// chronological (causal) order. Accounts and Balances are pure folds over
// that sequence. CreateTransaction appends to the underlying commit graph
// but deliberately does not refresh the in-memory sequence: callers that
// need the new balance reopen the ledger.
type Ledger struct {
	graph        CommitGraph
	cfg          *Config
	logger       *slog.Logger
	identity     Signature
	transactions []Transaction
}

// Option configures a Ledger at open time.
type Option func(*Ledger)

// WithLogger injects a structured logger used by the commit-log reader
// and the append path. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// WithIdentity sets the author/committer identity recorded on commits
// created by this ledger instance.
func WithIdentity(name, email string) Option {
	return func(l *Ledger) { l.identity = Signature{Name: name, Email: email} }
}

// Open opens the gitcash repository at path: it loads the repository
// configuration and walks the commit graph to extract all transactions.
func Open(path string, opts ...Option) (*Ledger, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	graph, err := OpenGitGraph(path)
	if err != nil {
		return nil, err
	}
	return OpenGraph(graph, cfg, opts...)
}

// OpenGraph opens a ledger over an explicit commit graph. It is the
// substrate-independent entry point; Open wires it to a git repository.
func OpenGraph(graph CommitGraph, cfg *Config, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		graph:    graph,
		cfg:      cfg,
		logger:   slog.New(slog.DiscardHandler),
		identity: Signature{Name: "gitcash", Email: "gitcash@localhost"},
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

// load walks the commit graph once and extracts the ordered transaction
// sequence. Any malformed ledger commit aborts the whole load: no
// partial, best-effort ledger is ever exposed.
func (l *Ledger) load() error {
	commits, err := l.graph.Log()
	if err != nil {
		return err
	}
	for _, commit := range commits {
		if !IsTransactionMessage(commit.Message) {
			continue
		}
		l.logger.Debug("processing ledger commit", "commit", string(commit.ID))
		tx, err := DecodeCommitMessage(commit.Message)
		if err != nil {
			return &TransactionParseError{Msg: "commit " + string(commit.ID), Err: err}
		}
		l.transactions = append(l.transactions, tx)
	}
	l.logger.Debug("ledger loaded", "ledger", l.cfg.Name, "transactions", len(l.transactions))
	return nil
}

// Config returns the loaded repository configuration.
func (l *Ledger) Config() *Config { return l.cfg }

// Transactions returns the materialized transaction sequence in
// chronological order.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Accounts returns every account appearing in at least one transaction,
// sorted for deterministic listing.
func (l *Ledger) Accounts() []Account {
	set := make(map[Account]bool)
	for _, tx := range l.transactions {
		set[tx.From] = true
		set[tx.To] = true
	}
	accounts := make([]Account, 0, len(set))
	for account := range set {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Type != accounts[j].Type {
			return accounts[i].Type < accounts[j].Type
		}
		return accounts[i].Name < accounts[j].Name
	})
	return accounts
}

// Balances folds the transaction sequence into per-account balances in
// minor units. Every transaction moves value from one account to
// another, so the balances always sum to exactly zero; source accounts
// simply go negative to balance external deposits.
func (l *Ledger) Balances() map[Account]int32 {
	balances := make(map[Account]int32)
	for _, tx := range l.transactions {
		balances[tx.From] -= tx.Amount
		balances[tx.To] += tx.Amount
	}
	return balances
}

// ConvertAmount converts a display amount into minor units using the
// loaded configuration.
func (l *Ledger) ConvertAmount(displayAmount float64) int32 {
	return l.cfg.ConvertAmount(displayAmount)
}

// CreateTransaction durably records a transaction as a new commit on top
// of the current head and advances head to it. The operation either
// fully succeeds or has no visible effect; if another writer advanced
// head in the meantime it fails with ErrHeadMoved and the caller should
// reload and retry. The in-memory ledger is not refreshed.
func (l *Ledger) CreateTransaction(tx Transaction) (CommitID, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	message, err := EncodeCommitMessage(tx, l.cfg)
	if err != nil {
		return "", err
	}
	head, err := l.graph.ResolveHead()
	if err != nil {
		return "", err
	}
	id, err := l.graph.CreateCommit(head, message, l.identity)
	if err != nil {
		return "", err
	}
	if err := l.graph.UpdateHead(head, id); err != nil {
		return "", err
	}
	l.logger.Info("transaction recorded", "commit", string(id), "summary", tx.Summary(l.cfg))
	return id, nil
}
