// Config loading for the corkline CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/corkline/corkline/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBoardDir       = "board_dir"
	cfgKeyWatcher        = "watcher"
	cfgKeyDebounceMs     = "debounce_ms"
	cfgKeyPollIntervalMs = "poll_interval_ms"
)

// Values loaded from config.yaml by PersistentPreRunE.
var (
	configWatcher    string
	configDebounceMs int
	configPollMs     int
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Corkline CLI configuration

# Change-detection backend: auto, fsnotify, or poll
watcher: auto

# Coalescing window for change batches, in milliseconds
debounce_ms: 300

# Polling interval for the poll backend, in milliseconds
poll_interval_ms: 2000

# Board directory (optional; overridable by --board-dir flag)
# board_dir:
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyWatcher, types.WatcherAuto)
	v.SetDefault(cfgKeyDebounceMs, int(types.DefaultDebounce.Milliseconds()))
	v.SetDefault(cfgKeyPollIntervalMs, int(types.DefaultPollInterval.Milliseconds()))
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Missing config.yaml is not an error.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
