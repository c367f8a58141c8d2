package gitcash

import (
	"errors"
	"reflect"
	"testing"
)

// seedTransaction encodes tx and commits it on top of the graph's head.
func seedTransaction(t *testing.T, g *MemoryGraph, tx Transaction) CommitID {
	t.Helper()
	message, err := EncodeCommitMessage(tx, testConfig)
	if err != nil {
		t.Fatalf("could not encode transaction: %v", err)
	}
	return g.Seed(message)
}

// seedScenario builds the reference history: an initial non-ledger
// commit, two deposits and one payment.
func seedScenario(t *testing.T) *MemoryGraph {
	t.Helper()
	g := NewMemoryGraph()
	g.Seed("Initial commit")
	seedTransaction(t, g, Transaction{From: source("cash"), To: user("alice"), Amount: 1000})
	seedTransaction(t, g, Transaction{From: source("cash"), To: user("bob"), Amount: 500})
	seedTransaction(t, g, Transaction{From: user("alice"), To: pos("shop1"), Amount: 300})
	return g
}

func TestLedgerBalances(t *testing.T) {
	ledger, err := OpenGraph(seedScenario(t), testConfig)
	if err != nil {
		t.Fatalf("OpenGraph returned error: %v", err)
	}

	want := map[Account]int32{
		source("cash"): -1500,
		user("alice"):  700,
		user("bob"):    500,
		pos("shop1"):   300,
	}
	if got := ledger.Balances(); !reflect.DeepEqual(got, want) {
		t.Errorf("Balances() = %v, want %v", got, want)
	}
}

func TestLedgerAccounts(t *testing.T) {
	ledger, err := OpenGraph(seedScenario(t), testConfig)
	if err != nil {
		t.Fatalf("OpenGraph returned error: %v", err)
	}

	want := []Account{user("alice"), user("bob"), pos("shop1"), source("cash")}
	if got := ledger.Accounts(); !reflect.DeepEqual(got, want) {
		t.Errorf("Accounts() = %v, want %v", got, want)
	}
}

func TestBalancesConservation(t *testing.T) {
	// The sum of all balances is zero for every prefix of the history.
	transactions := []Transaction{
		{From: source("cash"), To: user("alice"), Amount: 1000},
		{From: user("alice"), To: pos("shop1"), Amount: 420},
		{From: user("alice"), To: user("bob"), Amount: 130},
		{From: user("bob"), To: pos("shop1"), Amount: 130},
		{From: user("carol"), To: user("carol"), Amount: 0},
	}

	g := NewMemoryGraph()
	for _, tx := range transactions {
		seedTransaction(t, g, tx)

		ledger, err := OpenGraph(g, testConfig)
		if err != nil {
			t.Fatalf("OpenGraph returned error: %v", err)
		}
		var sum int64
		for _, balance := range ledger.Balances() {
			sum += int64(balance)
		}
		if sum != 0 {
			t.Fatalf("balances sum to %d after %d transactions, want 0", sum, len(ledger.Transactions()))
		}
	}
}

func TestLedgerOrdering(t *testing.T) {
	// A linear history C1 -> C2 -> C3 must fold in commit order.
	g := NewMemoryGraph()
	seedTransaction(t, g, Transaction{From: source("cash"), To: user("alice"), Amount: 100})
	seedTransaction(t, g, Transaction{From: user("alice"), To: user("bob"), Amount: 70})
	seedTransaction(t, g, Transaction{From: user("bob"), To: pos("shop1"), Amount: 50})

	ledger, err := OpenGraph(g, testConfig)
	if err != nil {
		t.Fatalf("OpenGraph returned error: %v", err)
	}

	got := ledger.Transactions()
	wantAmounts := []int32{100, 70, 50}
	if len(got) != len(wantAmounts) {
		t.Fatalf("Transactions() returned %d transactions, want %d", len(got), len(wantAmounts))
	}
	for i, tx := range got {
		if tx.Amount != wantAmounts[i] {
			t.Errorf("Transactions()[%d].Amount = %d, want %d", i, tx.Amount, wantAmounts[i])
		}
	}
}

func TestLedgerSkipsNonLedgerCommits(t *testing.T) {
	g := NewMemoryGraph()
	g.Seed("Initial commit")
	seedTransaction(t, g, Transaction{From: source("cash"), To: user("alice"), Amount: 100})
	g.Seed("Update README\n\nNothing to do with money.")
	g.Seed("chore: looks like a fence\n\n---\nbut it is not ledger data\n---\n")

	ledger, err := OpenGraph(g, testConfig)
	if err != nil {
		t.Fatalf("OpenGraph returned error: %v", err)
	}
	if got := len(ledger.Transactions()); got != 1 {
		t.Errorf("Transactions() has %d entries, want 1", got)
	}
	want := map[Account]int32{source("cash"): -100, user("alice"): 100}
	if got := ledger.Balances(); !reflect.DeepEqual(got, want) {
		t.Errorf("Balances() = %v, want %v", got, want)
	}
}

func TestCorruptCommitAbortsLoad(t *testing.T) {
	g := NewMemoryGraph()
	seedTransaction(t, g, Transaction{From: source("cash"), To: user("alice"), Amount: 100})
	g.Seed("Transaction: looks legit\n\n---\nfrom = \"member:alice\"\nto = \"pos:shop1\"\namount = 300\n---\n")

	_, err := OpenGraph(g, testConfig)
	var perr *TransactionParseError
	if !errors.As(err, &perr) {
		t.Errorf("OpenGraph = %v, want TransactionParseError", err)
	}
}

func TestCreateTransactionAppend(t *testing.T) {
	g := seedScenario(t)
	priorHead, err := g.ResolveHead()
	if err != nil {
		t.Fatalf("ResolveHead returned error: %v", err)
	}

	ledger, err := OpenGraph(g, testConfig)
	if err != nil {
		t.Fatalf("OpenGraph returned error: %v", err)
	}
	id, err := ledger.CreateTransaction(Transaction{From: user("bob"), To: pos("shop1"), Amount: 200})
	if err != nil {
		t.Fatalf("CreateTransaction returned error: %v", err)
	}

	// The new commit fast-forwards head from the prior head.
	commit, err := g.ReadCommit(id)
	if err != nil {
		t.Fatalf("ReadCommit returned error: %v", err)
	}
	if len(commit.Parents) != 1 || commit.Parents[0] != priorHead {
		t.Errorf("new commit parents = %v, want [%s]", commit.Parents, priorHead)
	}
	if head, _ := g.ResolveHead(); head != id {
		t.Errorf("head = %s, want %s", head, id)
	}

	// The open ledger is a snapshot: the append is only visible after a
	// reopen.
	if got := len(ledger.Transactions()); got != 3 {
		t.Errorf("open ledger has %d transactions after append, want 3", got)
	}
	reopened, err := OpenGraph(g, testConfig)
	if err != nil {
		t.Fatalf("OpenGraph (reopen) returned error: %v", err)
	}
	balances := reopened.Balances()
	if balances[user("bob")] != 300 || balances[pos("shop1")] != 500 {
		t.Errorf("after reopen bob = %d, shop1 = %d, want 300 and 500",
			balances[user("bob")], balances[pos("shop1")])
	}
}

func TestCreateTransactionValidatesBeforeWriting(t *testing.T) {
	g := seedScenario(t)
	priorHead, _ := g.ResolveHead()

	ledger, err := OpenGraph(g, testConfig)
	if err != nil {
		t.Fatalf("OpenGraph returned error: %v", err)
	}
	_, err = ledger.CreateTransaction(Transaction{From: pos("shop1"), To: user("alice"), Amount: 100})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CreateTransaction = %v, want ValidationError", err)
	}
	if head, _ := g.ResolveHead(); head != priorHead {
		t.Errorf("head moved on a rejected transaction: %s, want %s", head, priorHead)
	}
}

// staleHeadGraph simulates a concurrent writer: it reports a head from
// the past while the real head has already moved on.
type staleHeadGraph struct {
	*MemoryGraph
	stale CommitID
}

func (g *staleHeadGraph) ResolveHead() (CommitID, error) { return g.stale, nil }

func TestCreateTransactionDetectsMovedHead(t *testing.T) {
	g := seedScenario(t)
	stale, _ := g.ResolveHead()
	g.Seed("Transaction: user bob pays 1.00 CHF to pos shop1\n\n---\nfrom = \"user:bob\"\nto = \"pos:shop1\"\namount = 100\n---\n")

	ledger, err := OpenGraph(&staleHeadGraph{MemoryGraph: g, stale: stale}, testConfig)
	if err != nil {
		t.Fatalf("OpenGraph returned error: %v", err)
	}
	_, err = ledger.CreateTransaction(Transaction{From: user("alice"), To: pos("shop1"), Amount: 100})
	if !errors.Is(err, ErrHeadMoved) {
		t.Errorf("CreateTransaction = %v, want ErrHeadMoved", err)
	}
}

func TestLedgerConvertAmount(t *testing.T) {
	ledger, err := OpenGraph(seedScenario(t), testConfig)
	if err != nil {
		t.Fatalf("OpenGraph returned error: %v", err)
	}
	if got := ledger.ConvertAmount(3.50); got != 350 {
		t.Errorf("ConvertAmount(3.50) = %d, want 350", got)
	}
}
