// Package paths resolves the configuration and board directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultBoardDirName is the CWD-relative board directory used when no
// override is active.
const DefaultBoardDirName = "board"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CORKLINE_CONFIG_DIR"
	EnvBoardDir  = "CORKLINE_BOARD_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/corkline (fallback ~/.config/corkline)
// macOS:   ~/Library/Application Support/corkline
// Windows: %APPDATA%/corkline
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "corkline"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "corkline"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "corkline"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > CORKLINE_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveBoardDir returns the board directory following the precedence chain:
// flag > configYAMLValue > CORKLINE_BOARD_DIR env > $(CWD)/board.
//
// The CWD-relative default keeps a board colocated with whatever project the
// user runs corkline from, so distinct directories hold distinct boards.
func ResolveBoardDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvBoardDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultBoardDirName), nil
}
