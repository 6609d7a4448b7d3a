// List command prints the board's cards in column order.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corkline/corkline/pkg/types"
)

var (
	listQuery  string
	listLabels []string
)

var listCmd = &cobra.Command{
	Use:   "list [column]",
	Short: "List cards, optionally limited to one column",
	Long: `List prints cards in board order: column by column, position order
within each column. With a column ID argument only that column is shown.
The --query and --label flags narrow the listing; a card must match the
query and carry every given label.

Example:
  corkline list
  corkline list doing
  corkline list --query roof --label urgent`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listQuery, "query", "", "case-insensitive title/body substring filter")
	listCmd.Flags().StringArrayVar(&listLabels, "label", nil, "label ID the card must carry (repeatable)")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	s.SetFilter(listQuery, listLabels)

	b := s.Board()
	columns := b.Columns
	if len(args) == 1 {
		col := b.Column(args[0])
		if col == nil {
			return fmt.Errorf("column %q: %w", args[0], types.ErrColumnNotFound)
		}
		columns = []types.Column{*col}
	}

	if flagJSON {
		out := make(map[string][]*types.Card, len(columns))
		for _, col := range columns {
			out[col.ID] = s.FilteredCards(col.ID)
		}
		return printJSON(os.Stdout, out)
	}

	for i, col := range columns {
		if i > 0 {
			fmt.Println()
		}
		cards := s.FilteredCards(col.ID)
		fmt.Printf("%s (%d)\n", col.Name, len(cards))
		for _, c := range cards {
			printCard(os.Stdout, c)
		}
	}
	return nil
}
