package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/symtab"
	"github.com/robinvdvleuten/symtab/interner"
	"github.com/robinvdvleuten/symtab/output"
)

// Editors often write files in several steps.
const debounceDelay = 100 * time.Millisecond

type WatchCmd struct {
	File string `help:"File to watch." arg:"" type:"existingfile"`
	TableFlags
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := &watchSession{
		path:   cmd.File,
		lines:  cmd.Lines,
		table:  cmd.newTable(),
		out:    ctx.Stdout,
		styles: output.NewStyles(ctx.Stderr),
	}

	if _, err := session.reload(runCtx); err != nil {
		return reportError(ctx.Stderr, err)
	}
	printInfof(ctx.Stderr, "watching %s (%d strings), press Ctrl+C to stop",
		session.styles.FilePath(displayName(cmd.File)), session.table.Len())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cmd.File); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.File, err)
	}

	return session.run(runCtx, watcher, globals)
}

// watchSession keeps one interner alive across reloads so identifiers stay stable.
// New tokens go to out; reload diagnostics go to the standard logger.
type watchSession struct {
	path   string
	lines  bool
	table  *interner.Interner[symtab.ID]
	out    io.Writer
	styles *output.Styles
}

// run processes watcher events until ctx is done. Reloads happen on this
// goroutine only.
func (s *watchSession) run(ctx context.Context, watcher *fsnotify.Watcher, globals *Globals) error {
	var debounce *time.Timer
	var fire <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Remove and Rename are common in atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				debounce.Reset(debounceDelay)
			}
			fire = debounce.C

		case <-fire:
			fire = nil

			added, err := s.reload(ctx)
			if err != nil {
				log.Printf("%s %s: %v", s.styles.Error("reload failed"), s.styles.FilePath(s.path), err)
			} else if globals.Telemetry {
				log.Printf("%s %s: %d new string(s), %d total", s.styles.Success("reloaded"), s.styles.FilePath(s.path), added, s.table.Len())
			}

			// Re-add to catch files that were replaced.
			if err := watcher.Add(s.path); err != nil {
				log.Printf("%s failed to watch %s: %v", s.styles.Warning("warning:"), s.styles.FilePath(s.path), err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("%s %v", s.styles.Error("file watcher error:"), err)
		}
	}
}

// reload reads the file again and prints every token not seen before.
// It returns the number of new strings.
func (s *watchSession) reload(ctx context.Context) (int, error) {
	content, err := readInput(s.path)
	if err != nil {
		return 0, err
	}

	added := 0
	err = internEach(ctx, s.table, tokenize(content, s.lines), func(id symtab.ID, token []byte, isNew bool) {
		if !isNew {
			return
		}
		added++
		_, _ = fmt.Fprintf(s.out, "%d\t%s\n", id, token)
	})
	return added, err
}
