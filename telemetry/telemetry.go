// Package telemetry collects hierarchical timings for CLI operations such as
// reading input, tokenizing and interning.
//
// Collectors travel through context.Context so that instrumented code does
// not need extra parameters. When no collector is present, FromContext
// returns a no-op collector.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := collector.Start("stats ledger.txt")
//	read := timer.Child("read")
//	// ... work ...
//	read.End()
//	timer.End()
//
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/symtab/output"
)

type contextKey int

const (
	collectorKey contextKey = iota
	rootTimerKey
)

// Collector collects timings and reports them.
type Collector interface {
	// Start begins timing an operation nested under the most recent open timer.
	Start(name string) Timer

	// Report writes the collected timings to w. Styles may be nil for plain output.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation.
type Timer interface {
	// End stops the timer.
	End()

	// Child starts a timer nested under this one.
	Child(name string) Timer
}

// WithCollector returns a context carrying collector.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the collector in ctx, or a no-op collector.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// WithRootTimer returns a context carrying the timer that nested operations should attach to.
func WithRootTimer(ctx context.Context, timer Timer) context.Context {
	return context.WithValue(ctx, rootTimerKey, timer)
}

// StartChild starts a timer under the root timer in ctx, or a no-op timer if there is none.
func StartChild(ctx context.Context, name string) Timer {
	if root, ok := ctx.Value(rootTimerKey).(Timer); ok {
		return root.Child(name)
	}
	return noOpTimer{}
}
