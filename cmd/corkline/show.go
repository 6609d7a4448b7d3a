// Show command prints one card in full.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show one card's full details",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	card, err := s.Card(args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(os.Stdout, card)
	}

	fmt.Printf("Slug:     %s\n", card.Slug)
	fmt.Printf("Title:    %s\n", card.Title)
	fmt.Printf("Column:   %s\n", card.Column)
	fmt.Printf("Created:  %s\n", card.Created.Format("2006-01-02 15:04"))
	fmt.Printf("Modified: %s\n", card.Modified.Format("2006-01-02 15:04"))
	if len(card.Labels) > 0 {
		fmt.Printf("Labels:   %s\n", labelList(card.Labels))
	}
	if card.Body != "" {
		fmt.Printf("\n%s\n", card.Body)
	}
	return nil
}
