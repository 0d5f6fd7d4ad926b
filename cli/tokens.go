package cli

import (
	"bytes"
	"context"

	"github.com/robinvdvleuten/symtab"
	"github.com/robinvdvleuten/symtab/interner"
	"github.com/robinvdvleuten/symtab/telemetry"
)

// tokenize splits content into whitespace-separated words, or into lines when
// lines is set. Line mode keeps empty lines and strips a trailing "\r".
// The returned slices alias content.
func tokenize(content []byte, lines bool) [][]byte {
	if !lines {
		return bytes.Fields(content)
	}

	if len(content) == 0 {
		return nil
	}
	content = bytes.TrimSuffix(content, []byte("\n"))

	tokens := bytes.Split(content, []byte("\n"))
	for i, line := range tokens {
		tokens[i] = bytes.TrimSuffix(line, []byte("\r"))
	}
	return tokens
}

// internEach interns every token in order and calls fn with its identifier.
// It stops at the first error.
func internEach(ctx context.Context, table *interner.Interner[symtab.ID], tokens [][]byte, fn func(id symtab.ID, token []byte, added bool)) error {
	timer := telemetry.StartChild(ctx, "intern")
	defer timer.End()

	for _, token := range tokens {
		if err := ctx.Err(); err != nil {
			return err
		}

		before := table.Len()
		id, err := table.InternBytes(token)
		if err != nil {
			return err
		}
		if fn != nil {
			fn(id, token, table.Len() > before)
		}
	}
	return nil
}

// tokenizeTimed is tokenize wrapped in a telemetry timer.
func tokenizeTimed(ctx context.Context, content []byte, lines bool) [][]byte {
	timer := telemetry.StartChild(ctx, "tokenize")
	defer timer.End()
	return tokenize(content, lines)
}
