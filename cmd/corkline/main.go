// Package main provides the corkline CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/corkline/corkline/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the CLI exit code: user errors (bad input,
// missing cards or columns) exit 1, everything else exits 2.
func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrCardNotFound),
		errors.Is(err, types.ErrColumnNotFound),
		errors.Is(err, types.ErrLabelNotFound),
		errors.Is(err, types.ErrDuplicateSlug),
		errors.Is(err, types.ErrEmptyTitle),
		errors.Is(err, types.ErrColumnNotEmpty):
		return exitUserError
	default:
		return exitSysError
	}
}
