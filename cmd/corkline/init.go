// Init command creates a new board directory.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corkline/corkline/internal/boardfs"
	"github.com/corkline/corkline/pkg/types"
)

var initTitle string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new board in the board directory",
	Long: `Init writes a fresh board.md with the default columns (To Do, Doing,
Done) and creates the cards/ and archive/ directory skeleton. It refuses to
overwrite an existing board.

Example:
  corkline init
  corkline init --title "Release 2.0" --board-dir ./release-board`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initTitle, "title", "Board", "title for the new board")
}

func runInit(cmd *cobra.Command, args []string) error {
	boardDir, err := resolveBoardDir()
	if err != nil {
		return fmt.Errorf("resolve board dir: %w", err)
	}

	b := types.Board{
		Title: initTitle,
		Columns: []types.Column{
			{ID: "todo", Name: "To Do"},
			{ID: "doing", Name: "Doing"},
			{ID: "done", Name: "Done"},
		},
	}

	if err := boardfs.New(boardDir, newLogger()).Init(b); err != nil {
		return fmt.Errorf("init board: %w", err)
	}

	fmt.Printf("Initialized board %q in %s\n", initTitle, boardDir)
	return nil
}
