// Update command edits a card's title, body, or labels.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corkline/corkline/pkg/board"
)

var (
	updateTitle        string
	updateBody         string
	updateAddLabels    []string
	updateRemoveLabels []string
)

var updateCmd = &cobra.Command{
	Use:   "update <slug>",
	Short: "Edit a card's title, body, or labels",
	Long: `Update changes the given fields of a card. The slug never changes,
even when the title does, so the card's file stays where it was.

Example:
  corkline update fix-the-roof --title "Fix the whole roof"
  corkline update fix-the-roof --add-label urgent --remove-label someday`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateBody, "body", "", "new body text")
	updateCmd.Flags().StringArrayVar(&updateAddLabels, "add-label", nil, "label ID to attach (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateRemoveLabels, "remove-label", nil, "label ID to detach (repeatable)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	upd := board.CardUpdate{}
	if cmd.Flags().Changed("title") {
		upd.Title = &updateTitle
	}
	if cmd.Flags().Changed("body") {
		upd.Body = &updateBody
	}
	if len(updateAddLabels) > 0 || len(updateRemoveLabels) > 0 {
		card, err := s.Card(args[0])
		if err != nil {
			return err
		}
		labels := mergeLabels(card.Labels, updateAddLabels, updateRemoveLabels)
		upd.Labels = &labels
	}

	card, err := s.UpdateCard(args[0], upd)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}

	if flagJSON {
		return printJSON(os.Stdout, card)
	}
	fmt.Printf("Updated %s\n", card.Slug)
	return nil
}

// mergeLabels applies label additions and removals to the current set,
// preserving order and dropping duplicates.
func mergeLabels(current, add, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, id := range remove {
		drop[id] = true
	}
	out := make([]string, 0, len(current)+len(add))
	seen := make(map[string]bool)
	for _, id := range append(append([]string{}, current...), add...) {
		if drop[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
