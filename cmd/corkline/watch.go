// Watch command runs the store with live change detection, printing
// lifecycle signals until interrupted.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/corkline/corkline/pkg/board"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the board directory and report changes",
	Long: `Watch opens the board, starts the change-detection backend, and
prints a line for every card lifecycle event until interrupted. Edits made
with any editor or tool show up as the corresponding events.

Example:
  corkline watch
  corkline watch --board-dir ./release-board`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	s.OnSignal(func(sig board.Signal) {
		switch sig.Kind {
		case board.SignalMoved:
			fmt.Printf("%-9s %s  %s -> %s\n", sig.Kind, sig.Card.Slug, sig.FromColumn, sig.Card.Column)
		case board.SignalCompleted:
			fmt.Printf("%-9s %s  after %s\n", sig.Kind, sig.Card.Slug, sig.Age.Round(time.Second))
		default:
			fmt.Printf("%-9s %s\n", sig.Kind, sig.Card.Slug)
		}
	})

	if err := s.StartWatching(); err != nil {
		return err
	}

	fmt.Println("Watching board (Ctrl-C to stop)")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	fmt.Println("\nStopping")
	return nil
}
