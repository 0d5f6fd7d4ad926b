// Package output provides styling helpers for terminal output.
package output

import (
	"io"
	"strconv"

	"github.com/muesli/termenv"
)

// Styles renders styled strings for a particular writer. On writers that are
// not terminals every helper returns its input unchanged.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a Styles instance for w.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

// Success returns text in green and bold.
func (s *Styles) Success(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("2")).
		Bold().
		String()
}

// Error returns text in red and bold.
func (s *Styles) Error(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("1")).
		Bold().
		String()
}

// FilePath returns text in cyan.
func (s *Styles) FilePath(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("6")).
		String()
}

// ID returns an identifier in magenta.
func (s *Styles) ID(id uint64) string {
	return s.output.String(strconv.FormatUint(id, 10)).
		Foreground(s.output.Color("5")).
		String()
}

// Token returns interned text in yellow, quoted as by Quote.
func (s *Styles) Token(text string) string {
	return s.output.String(Quote(text)).
		Foreground(s.output.Color("3")).
		String()
}

// Keyword returns text in bold.
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).
		Bold().
		String()
}

// Dim returns faint text for secondary information.
func (s *Styles) Dim(text string) string {
	return s.output.String(text).
		Faint().
		String()
}

// Warning returns text in yellow and bold.
func (s *Styles) Warning(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		Bold().
		String()
}

// Timing returns a duration string, red when slow and dimmed otherwise.
func (s *Styles) Timing(text string, slow bool) string {
	if slow {
		return s.output.String(text).
			Foreground(s.output.Color("1")).
			String()
	}
	return s.Dim(text)
}

// Quote returns text unchanged unless it is empty or needs escaping, in which
// case it returns the Go quoted form.
func Quote(text string) string {
	if quoted := strconv.Quote(text); text == "" || quoted[1:len(quoted)-1] != text {
		return quoted
	}
	return text
}
