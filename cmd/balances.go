package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/coredump-ch/gitcash/renderer"
)

type balancesCmd struct{}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "list all accounts and their balances" }
func (*balancesCmd) Usage() string {
	return `gitcash balances

  Folds the full transaction history into per-account balances and
  renders them as a table. Source accounts are negative: they record how
  much money entered the system.
`
}

func (*balancesCmd) SetFlags(f *flag.FlagSet) {}

func (*balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, _, err := OpenLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.BalancesMarkdown(ledger))
	return subcommands.ExitSuccess
}
