package cli

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCommandError(t *testing.T) {
	t.Run("implements error interface", func(t *testing.T) {
		err := NewCommandError(1)
		assert.Error(t, err)
		assert.Equal(t, "command failed", err.Error())
	})

	t.Run("returns exit code", func(t *testing.T) {
		err := NewCommandError(42)
		assert.Equal(t, 42, err.ExitCode())
	})

	t.Run("survives wrapping", func(t *testing.T) {
		var err error = NewCommandError(3)
		wrapped := errors.Join(errors.New("context"), err)

		var cmdErr *CommandError
		assert.True(t, errors.As(wrapped, &cmdErr))
		assert.Equal(t, 3, cmdErr.ExitCode())
	})
}
