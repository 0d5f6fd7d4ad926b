package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/symtab"
	"github.com/robinvdvleuten/symtab/interner"
	"github.com/robinvdvleuten/symtab/output"
)

// DoctorCmd provides utilities for inspecting interned tables.
type DoctorCmd struct {
	Dump DumpCmd `cmd:"" help:"Show the identifier table built from the input."`
}

// DumpCmd prints every interned string with its identifier.
type DumpCmd struct {
	File FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	TableFlags

	Raw bool `help:"Print the table statistics as a Go value instead of the table."`
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, report := startTelemetry(ctx, globals, fmt.Sprintf("dump %s", cmd.File.Filename))
	defer report()

	table := cmd.newTable()
	tokens := tokenizeTimed(runCtx, cmd.File.Contents, cmd.Lines)
	if err := internEach(runCtx, table, tokens, nil); err != nil {
		return reportError(ctx.Stderr, err)
	}

	if cmd.Raw {
		repr.New(ctx.Stdout).Println(table.Stats())
		return nil
	}

	writeTable(ctx.Stdout, table)
	return nil
}

// writeTable prints an aligned ID / TEXT / BYTES table. Column widths are
// measured in terminal cells so wide runes line up.
func writeTable(w io.Writer, table *interner.Interner[symtab.ID]) {
	idWidth := len("ID")
	if n := table.Len(); n > 0 {
		idWidth = max(idWidth, len(strconv.Itoa(n-1)))
	}

	textWidth := len("TEXT")
	for _, text := range table.All() {
		textWidth = max(textWidth, runewidth.StringWidth(output.Quote(text)))
	}

	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		runewidth.FillRight("ID", idWidth),
		runewidth.FillRight("TEXT", textWidth),
		"BYTES")

	for id, text := range table.All() {
		_, _ = fmt.Fprintf(w, "%s  %s  %d\n",
			runewidth.FillRight(strconv.FormatUint(uint64(id), 10), idWidth),
			runewidth.FillRight(output.Quote(text), textWidth),
			len(text))
	}
}
