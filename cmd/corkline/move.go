// Move command relocates cards between or within columns.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var moveAt int

var moveCmd = &cobra.Command{
	Use:   "move <slug>... <column>",
	Short: "Move cards to a column",
	Long: `Move relocates one or more cards to the target column. A single card
can be placed at a specific index with --at; bulk moves append in the given
order and report how many cards actually moved.

Example:
  corkline move fix-the-roof doing
  corkline move fix-the-roof --at 0 doing
  corkline move fix-the-roof clean-gutters done`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMove,
}

func init() {
	moveCmd.Flags().IntVar(&moveAt, "at", -1, "target index within the column (single card only; -1 appends)")
}

func runMove(cmd *cobra.Command, args []string) error {
	slugs, column := args[:len(args)-1], args[len(args)-1]

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if len(slugs) == 1 {
		if err := s.MoveCard(slugs[0], column, moveAt); err != nil {
			return fmt.Errorf("move card: %w", err)
		}
		fmt.Printf("Moved %s to %s\n", slugs[0], column)
		return nil
	}

	if moveAt >= 0 {
		return fmt.Errorf("--at requires exactly one card")
	}
	moved := s.MoveCards(slugs, column)
	fmt.Printf("Moved %d of %d cards to %s\n", moved, len(slugs), column)
	return nil
}
