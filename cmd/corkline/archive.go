// Archive command completes cards, moving their files into archive/.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <slug>...",
	Short: "Archive cards (complete them)",
	Long: `Archive moves cards out of play into the archive/ directory. The
archived file is renamed with the completion date and the slug becomes
available for new cards. Archiving is terminal; there is no unarchive.

Example:
  corkline archive fix-the-roof
  corkline archive fix-the-roof clean-gutters`,
	Args: cobra.MinimumNArgs(1),
	RunE: runArchive,
}

func runArchive(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) == 1 {
		if err := s.ArchiveCard(args[0]); err != nil {
			return fmt.Errorf("archive card: %w", err)
		}
		fmt.Printf("Archived %s\n", args[0])
		return nil
	}

	archived := s.ArchiveCards(args)
	fmt.Printf("Archived %d of %d cards\n", archived, len(args))
	return nil
}
