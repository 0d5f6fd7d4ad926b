package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/symtab"
	"github.com/robinvdvleuten/symtab/interner"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool             `help:"Show timing telemetry for operations."`
	Version   kong.VersionFlag `help:"Show version information."`
}

type Commands struct {
	Globals

	Intern InternCmd `cmd:"" help:"Intern every token of the input and print its identifier."`
	Stats  StatsCmd  `cmd:"" help:"Show interner statistics for one or more inputs."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for inspecting interned tables."`
	Watch  WatchCmd  `cmd:"" help:"Watch a file and intern new tokens as it changes."`
}

// TableFlags configures the interner built by a command.
type TableFlags struct {
	Lines    bool `help:"Intern whole lines instead of whitespace-separated words."`
	Capacity int  `help:"Initial arena capacity in bytes." default:"4096"`
	MaxBytes int  `help:"Upper bound on arena storage in bytes (0 for unbounded)." default:"0"`
	MaxIDs   int  `name:"max-ids" help:"Upper bound on distinct strings (0 for the identifier type's limit)." default:"0"`
}

func (f TableFlags) options() []interner.Option {
	return []interner.Option{
		interner.WithCapacity(f.Capacity),
		interner.WithMaxBytes(f.MaxBytes),
		interner.WithMaxIDs(f.MaxIDs),
	}
}

func (f TableFlags) newTable() *interner.Interner[symtab.ID] {
	return interner.New[symtab.ID](f.options()...)
}

// New builds the kong parser for cmds.
func New(cmds *Commands, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("symtab"),
		kong.Description("Intern strings and inspect the resulting symbol table."),
		kong.UsageOnError(),
		kong.Vars{"version": BuildVersion()},
		kong.Bind(&cmds.Globals),
	}
	return kong.New(cmds, append(opts, options...)...)
}

// BuildVersion returns the version string shown by --version.
func BuildVersion() string {
	version := Version
	if version == "" {
		version = "dev"
	}
	if CommitSHA == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, CommitSHA)
}
