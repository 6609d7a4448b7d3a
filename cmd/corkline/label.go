// Label commands manage the board's label set.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var labelColor string

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage board labels",
}

var labelAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a label to the board",
	Args:  cobra.ExactArgs(1),
	RunE:  runLabelAdd,
}

var labelRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a label from the board and from every card carrying it",
	Args:  cobra.ExactArgs(1),
	RunE:  runLabelRemove,
}

var labelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the board's labels",
	Args:  cobra.NoArgs,
	RunE:  runLabelList,
}

func init() {
	labelAddCmd.Flags().StringVar(&labelColor, "color", "", "label color, e.g. #d73a4a")
	labelCmd.AddCommand(labelAddCmd)
	labelCmd.AddCommand(labelRemoveCmd)
	labelCmd.AddCommand(labelListCmd)
}

func runLabelAdd(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	label, err := s.AddLabel(args[0], labelColor)
	if err != nil {
		return fmt.Errorf("add label: %w", err)
	}

	if flagJSON {
		return printJSON(os.Stdout, label)
	}
	fmt.Printf("Added label %s (%s)\n", label.Name, label.ID)
	return nil
}

func runLabelRemove(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.RemoveLabel(args[0]); err != nil {
		return fmt.Errorf("remove label: %w", err)
	}
	fmt.Printf("Removed label %s\n", args[0])
	return nil
}

func runLabelList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	labels := s.Board().Labels
	if flagJSON {
		return printJSON(os.Stdout, labels)
	}
	for _, l := range labels {
		line := fmt.Sprintf("%-38s %s", l.ID, l.Name)
		if l.Color != "" {
			line += "  " + l.Color
		}
		fmt.Println(line)
	}
	return nil
}
