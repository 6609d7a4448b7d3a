// Root command for the corkline CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/corkline/corkline/internal/paths"
	"github.com/corkline/corkline/pkg/board"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagBoardDir  string
	flagJSON      bool
	flagVerbose   bool
)

// configBoardDir holds the board_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configBoardDir string

var rootCmd = &cobra.Command{
	Use:           "corkline",
	Short:         "Corkline is a file-backed kanban board",
	Version:       board.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configBoardDir = cfg.GetString(cfgKeyBoardDir)
		configWatcher = cfg.GetString(cfgKeyWatcher)
		configDebounceMs = cfg.GetInt(cfgKeyDebounceMs)
		configPollMs = cfg.GetInt(cfgKeyPollIntervalMs)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagBoardDir, "board-dir", "", "board directory (default: $(CWD)/board)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(columnCmd)
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(watchCmd)
}

// resolveBoardDir returns the board directory path following the precedence:
// --board-dir flag > config.yaml board_dir > CORKLINE_BOARD_DIR env > default.
func resolveBoardDir() (string, error) {
	return paths.ResolveBoardDir(flagBoardDir, configBoardDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > CORKLINE_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
