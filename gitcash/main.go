package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/coredump-ch/gitcash/cmd"
)

func main() {
	// Shell completion: when invoked by the completion machinery this
	// prints candidates and exits, otherwise it is a no-op.
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"accounts": {},
			"balances": {},
			"tx":       {},
			"pay":      {},
			"deposit":  {},
			"add-user": {},
			"topic":    {},
		},
		Flags: map[string]complete.Predictor{
			"repo-path": predict.Dirs("*"),
			"v":         predict.Nothing,
			"raw":       predict.Nothing,
		},
	}
	completion.Complete("gitcash")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
