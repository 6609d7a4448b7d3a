// Add command creates a new card.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	addColumn string
	addBody   string
	addLabels []string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new card",
	Long: `Add creates a card with the given title at the end of a column.
The card's slug (its permanent identity and filename) is derived from the
title once, at creation.

Example:
  corkline add "Fix the roof"
  corkline add "Ship release" --column doing --label urgent`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addColumn, "column", "todo", "column to add the card to")
	addCmd.Flags().StringVar(&addBody, "body", "", "card body text")
	addCmd.Flags().StringArrayVar(&addLabels, "label", nil, "label ID to attach (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	card, err := s.AddCard(args[0], addColumn, addBody, addLabels)
	if err != nil {
		return fmt.Errorf("add card: %w", err)
	}

	if flagJSON {
		return printJSON(os.Stdout, card)
	}
	fmt.Printf("Created card %s in %s\n", card.Slug, card.Column)
	return nil
}
