// Command dashctl values and edits transaction log files without a server.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&valueCmd{}, "portfolio")
	commander.Register(&holdingsCmd{}, "portfolio")
	commander.Register(&historyCmd{}, "portfolio")
	commander.Register(&recordCmd{}, "transactions")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
