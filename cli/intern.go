package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/symtab"
	"github.com/robinvdvleuten/symtab/output"
)

type InternCmd struct {
	File FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	TableFlags

	Unique bool `help:"Only print the first occurrence of every token."`
}

func (cmd *InternCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, report := startTelemetry(ctx, globals, fmt.Sprintf("intern %s", cmd.File.Filename))
	defer report()

	tokens := tokenizeTimed(runCtx, cmd.File.Contents, cmd.Lines)
	table := cmd.newTable()

	var styles *output.Styles
	if isTerminal(ctx.Stdout) {
		styles = output.NewStyles(ctx.Stdout)
	}

	err := internEach(runCtx, table, tokens, func(id symtab.ID, token []byte, added bool) {
		if cmd.Unique && !added {
			return
		}
		if styles != nil {
			_, _ = fmt.Fprintf(ctx.Stdout, "%s\t%s\n", styles.ID(uint64(id)), styles.Token(string(token)))
			return
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%d\t%s\n", id, token)
	})
	if err != nil {
		return reportError(ctx.Stderr, err)
	}

	return nil
}
