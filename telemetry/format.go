package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/symtab/output"
)

// slowThreshold marks operations highlighted as slow in styled reports.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree writes the tree rooted at root, for example:
//
//	stats words.txt: 12ms
//	├─ read: 3ms
//	└─ intern: 9ms
func formatTimingTree(w io.Writer, root *timerNode, styles *output.Styles) {
	duration := formatDuration(root.end.Sub(root.start))

	name := root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, duration)

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles)
	}
}

func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles) {
	elapsed := node.end.Sub(node.start)

	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	if styles != nil {
		_, _ = fmt.Fprintf(w, "%s%s: %s\n",
			styles.Dim(prefix+branch),
			node.name,
			styles.Timing(formatDuration(elapsed), elapsed >= slowThreshold))
	} else {
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, node.name, formatDuration(elapsed))
	}

	for i, child := range node.children {
		formatNode(w, child, prefix+extension, i == len(node.children)-1, styles)
	}
}

// formatDuration shows microseconds below 1ms, milliseconds below 1s and seconds otherwise.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
