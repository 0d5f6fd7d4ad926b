package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"golang.org/x/sync/errgroup"

	"github.com/robinvdvleuten/symtab"
	"github.com/robinvdvleuten/symtab/hashing"
	"github.com/robinvdvleuten/symtab/interner"
	"github.com/robinvdvleuten/symtab/metrics"
	"github.com/robinvdvleuten/symtab/telemetry"
)

type StatsCmd struct {
	Files []string `help:"Input filenames (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	TableFlags

	Metrics bool `help:"Also print the statistics in the prometheus text format."`
	List    bool `help:"Also print every distinct string in identifier order."`
}

var errStdinTwice = errors.New("stdin ('-') can only be given once")

// inputStats summarizes one input of the stats command.
type inputStats struct {
	Name   string
	Tokens int
	Digest uint64
}

func (cmd *StatsCmd) Run(ctx *kong.Context, globals *Globals) error {
	files := cmd.Files
	if len(files) == 0 {
		files = []string{"-"}
	}
	if err := checkStdinOnce(files); err != nil {
		return reportError(ctx.Stderr, err)
	}

	runCtx, report := startTelemetry(ctx, globals, "stats")
	defer report()

	table := interner.NewSync[symtab.ID](cmd.options()...)
	inputs := make([]inputStats, len(files))

	timer := telemetry.StartChild(runCtx, fmt.Sprintf("intern %d input(s)", len(files)))
	g, gctx := errgroup.WithContext(runCtx)
	for i, name := range files {
		g.Go(func() error {
			content, err := readInput(name)
			if err != nil {
				return err
			}

			tokens := tokenize(content, cmd.Lines)
			for _, token := range tokens {
				if err := gctx.Err(); err != nil {
					return err
				}
				if _, err := table.InternBytes(token); err != nil {
					return fmt.Errorf("%s: %w", displayName(name), err)
				}
			}

			inputs[i] = inputStats{
				Name:   displayName(name),
				Tokens: len(tokens),
				Digest: hashing.Sum64(content),
			}
			return nil
		})
	}
	err := g.Wait()
	timer.End()
	if err != nil {
		return reportError(ctx.Stderr, err)
	}

	writeStats(ctx.Stdout, inputs, table.Stats())

	if cmd.List {
		for id, text := range table.Snapshot() {
			_, _ = fmt.Fprintf(ctx.Stdout, "%d\t%s\n", id, text)
		}
	}

	if cmd.Metrics {
		_, _ = fmt.Fprintln(ctx.Stdout)
		if err := writeMetrics(ctx.Stdout, table); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	return nil
}

// checkStdinOnce rejects more than one stdin entry. Concurrent readers would
// split the stream between them.
func checkStdinOnce(files []string) error {
	seen := false
	for _, name := range files {
		if name != "-" {
			continue
		}
		if seen {
			return errStdinTwice
		}
		seen = true
	}
	return nil
}

func writeStats(w io.Writer, inputs []inputStats, stats interner.Stats) {
	total := 0
	for _, in := range inputs {
		total += in.Tokens
		printInfof(w, "%s: %s tokens (fnv1 %016x)", in.Name, humanize.Comma(int64(in.Tokens)), in.Digest)
	}

	printSuccess(w, fmt.Sprintf("%s distinct strings from %s tokens",
		humanize.Comma(int64(stats.Strings)), humanize.Comma(int64(total))))
	_, _ = fmt.Fprintf(w, "  arena: %s used of %s reserved, %d retired buffer(s) after %d growth(s)\n",
		humanize.Bytes(uint64(stats.Arena.Used)),
		humanize.Bytes(uint64(stats.Arena.Reserved)),
		stats.Arena.Retired,
		stats.Arena.Growths)
}

func writeMetrics(w io.Writer, source metrics.Source) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(metrics.NewCollector(source, "symtab", nil)); err != nil {
		return err
	}

	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
