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

type addUserCmd struct{}

func (*addUserCmd) Name() string     { return "add-user" }
func (*addUserCmd) Synopsis() string { return "register a new user account" }
func (*addUserCmd) Usage() string {
	return `gitcash add-user <name>

  Registers a new user account by recording a zero-amount transaction to
  it. Names must be ASCII letters and digits only.
`
}

func (*addUserCmd) SetFlags(f *flag.FlagSet) {}

func (*addUserCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one user name.")
		return subcommands.ExitUsageError
	}
	user, err := gitcash.NewUser(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	ledger, _, err := OpenLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for _, account := range ledger.Accounts() {
		if account == user {
			fmt.Fprintf(os.Stderr, "Error: user %q already exists.\n", user.Name)
			return subcommands.ExitFailure
		}
	}

	// A zero-amount transaction to the user registers the account
	// without moving any value.
	tx := gitcash.Transaction{From: user, To: user, Amount: 0}
	id, err := ledger.CreateTransaction(tx)
	if errors.Is(err, gitcash.ErrHeadMoved) {
		fmt.Fprintln(os.Stderr, "Another writer updated the ledger, please retry.")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created user %q as commit %s\n", user.Name, id)
	return subcommands.ExitSuccess
}
