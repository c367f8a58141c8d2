package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/coredump-ch/gitcash"
)

type depositCmd struct {
	user   string
	amount float64
	source string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit money from a source into a user account" }
func (*depositCmd) Usage() string {
	return `gitcash deposit -user alice -amount 50 [-source cash]

  Records money entering the system: a transaction from a source account
  to a user account. The source balance goes negative by the same
  amount, keeping the ledger sum at zero.
`
}

func (d *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&d.user, "user", "", "Receiving user name, e.g. alice.")
	f.Float64Var(&d.amount, "amount", 0, "Amount in display units.")
	f.StringVar(&d.source, "source", "cash", "Source account name.")
}

func (d *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if d.user == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required.")
		return subcommands.ExitUsageError
	}
	to, err := gitcash.NewUser(d.user)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	from, err := gitcash.NewSource(d.source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	ledger, _, err := OpenLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx := gitcash.Transaction{From: from, To: to, Amount: ledger.ConvertAmount(d.amount)}
	id, err := ledger.CreateTransaction(tx)
	if errors.Is(err, gitcash.ErrHeadMoved) {
		fmt.Fprintln(os.Stderr, "Another writer updated the ledger, please retry.")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %q as commit %s\n", tx.Summary(ledger.Config()), id)
	return subcommands.ExitSuccess
}
