// Shared helpers for corkline CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/corkline/corkline/pkg/board"
	"github.com/corkline/corkline/pkg/types"
)

// newLogger builds the CLI logger. Warnings and errors only unless --verbose
// is set; the board directory is the user's document, so routine operations
// stay quiet.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// storeConfig assembles the store configuration from the resolved board
// directory, config.yaml values, and flags.
func storeConfig() (types.Config, error) {
	boardDir, err := resolveBoardDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve board dir: %w", err)
	}

	return types.Config{
		BoardDir:     boardDir,
		Watcher:      configWatcher,
		Debounce:     time.Duration(configDebounceMs) * time.Millisecond,
		PollInterval: time.Duration(configPollMs) * time.Millisecond,
	}, nil
}

// openStore opens the board store for a subcommand. The caller must defer
// store.Close().
func openStore() (*board.Store, error) {
	cfg, err := storeConfig()
	if err != nil {
		return nil, err
	}

	s, err := board.Open(cfg, newLogger())
	if err != nil {
		return nil, fmt.Errorf("open board: %w", err)
	}
	return s, nil
}

// printJSON writes v as indented JSON to w.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// printCard writes one card in the human-readable single-line format.
func printCard(w io.Writer, c *types.Card) {
	line := fmt.Sprintf("%-24s %s", c.Slug, c.Title)
	if len(c.Labels) > 0 {
		line += fmt.Sprintf("  [%s]", labelList(c.Labels))
	}
	fmt.Fprintln(w, line)
}

func labelList(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ", "
		}
		out += id
	}
	return out
}
