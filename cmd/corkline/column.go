// Column commands manage the board's lanes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Manage board columns",
}

var columnAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a column to the end of the board",
	Args:  cobra.ExactArgs(1),
	RunE:  runColumnAdd,
}

var columnRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a column (its ID and directory stay the same)",
	Args:  cobra.ExactArgs(2),
	RunE:  runColumnRename,
}

var columnRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a column from the board",
	Long: `Remove drops a column from the board metadata. The column's card
files are left on disk; move or archive them first if you want the
directory cleaned up.`,
	Args: cobra.ExactArgs(1),
	RunE: runColumnRemove,
}

func init() {
	columnCmd.AddCommand(columnAddCmd)
	columnCmd.AddCommand(columnRenameCmd)
	columnCmd.AddCommand(columnRemoveCmd)
}

func runColumnAdd(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	col, err := s.AddColumn(args[0])
	if err != nil {
		return fmt.Errorf("add column: %w", err)
	}

	if flagJSON {
		return printJSON(os.Stdout, col)
	}
	fmt.Printf("Added column %s (%s)\n", col.Name, col.ID)
	return nil
}

func runColumnRename(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.RenameColumn(args[0], args[1]); err != nil {
		return fmt.Errorf("rename column: %w", err)
	}
	fmt.Printf("Renamed column %s to %s\n", args[0], args[1])
	return nil
}

func runColumnRemove(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.RemoveColumn(args[0]); err != nil {
		return fmt.Errorf("remove column: %w", err)
	}
	fmt.Printf("Removed column %s\n", args[0])
	return nil
}
