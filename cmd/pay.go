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

type payCmd struct {
	from        string
	amount      float64
	description string
	class       string
	ean         uint64
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "record a payment to the configured point of sale" }
func (*payCmd) Usage() string {
	return `gitcash pay -from user:alice -amount 3.50 [-description <text>] [-class <class>] [-ean <ean>]

  Records a payment from the given account to the point-of-sale account
  configured for this gitcash instance, as a new commit on the ledger.
  The amount is given in display units (e.g. francs, not rappen).
`
}

func (p *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.from, "from", "", "Paying account, e.g. user:alice.")
	f.Float64Var(&p.amount, "amount", 0, "Amount in display units, e.g. 3.50.")
	f.StringVar(&p.description, "description", "", "Optional free-form description.")
	f.StringVar(&p.class, "class", "", "Optional article class tag.")
	f.Uint64Var(&p.ean, "ean", 0, "Optional article EAN code.")
}

func (p *payCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.from == "" {
		fmt.Fprintln(os.Stderr, "Error: -from is required.")
		return subcommands.ExitUsageError
	}
	ledger, app, err := OpenLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	to, err := app.PointOfSale()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	from, err := gitcash.ParseAccount(p.from)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	tx := gitcash.Transaction{
		From:        from,
		To:          to,
		Amount:      ledger.ConvertAmount(p.amount),
		Description: p.description,
	}
	if p.class != "" || p.ean != 0 {
		tx.Meta = &gitcash.TransactionMeta{Class: p.class, EAN: p.ean}
	}

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
