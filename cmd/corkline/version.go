// Version command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corkline/corkline/pkg/board"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("corkline v" + board.Version)
	},
}
