// Delete command removes cards permanently.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <slug>...",
	Short: "Delete cards permanently",
	Long: `Delete removes card files for good, with no archive copy. Use
archive to keep a record of finished work.

Example:
  corkline delete stale-idea`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) == 1 {
		if err := s.DeleteCard(args[0]); err != nil {
			return fmt.Errorf("delete card: %w", err)
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	}

	deleted := s.DeleteCards(args)
	fmt.Printf("Deleted %d of %d cards\n", deleted, len(args))
	return nil
}
