package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/symtab/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""
)

// options are the kong options the binary adds on top of cli.New.
func options() []kong.Option {
	return []kong.Option{
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}
}

func main() {
	cli.Version = Version
	cli.CommitSHA = CommitSHA

	var cmds cli.Commands
	parser, err := cli.New(&cmds, options()...)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(); err != nil {
		var cmdErr *cli.CommandError
		if errors.As(err, &cmdErr) {
			os.Exit(cmdErr.ExitCode())
		}
		ctx.FatalIfErrorf(err)
	}
}
