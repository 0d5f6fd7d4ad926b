package cli

import (
	"errors"
	"io"
	"io/fs"

	"github.com/robinvdvleuten/symtab/arena"
	"github.com/robinvdvleuten/symtab/interner"
)

// errorHint returns a suggestion for errors the user can fix with a flag or path.
func errorHint(err error) string {
	switch {
	case errors.Is(err, arena.ErrArenaFull):
		return "raise --max-bytes, or set it to 0 for unbounded storage"
	case errors.Is(err, interner.ErrIDSpaceExhausted):
		return "raise --max-ids, or set it to 0 to use the full identifier range"
	case errors.Is(err, fs.ErrNotExist):
		return "check that the file exists"
	case errors.Is(err, fs.ErrPermission):
		return "check the file permissions"
	default:
		return ""
	}
}

// reportError prints err with an optional hint and returns the CommandError
// the command should exit with.
func reportError(w io.Writer, err error) *CommandError {
	printError(w, err.Error())
	if hint := errorHint(err); hint != "" {
		printInfof(w, "%s", hint)
	}
	return NewCommandError(1)
}
