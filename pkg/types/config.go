package types

import (
	"errors"
	"time"
)

// Watcher backend selection values for Config.Watcher.
const (
	WatcherAuto     = "auto"
	WatcherFsnotify = "fsnotify"
	WatcherPoll     = "poll"
)

// Config validation errors.
var (
	ErrWatcherUnknown      = errors.New("unknown watcher backend")
	ErrDebounceInvalid     = errors.New("debounce window must be positive")
	ErrPollIntervalInvalid = errors.New("poll interval must be positive")
)

// knownWatchers lists the watcher selections that Validate accepts.
var knownWatchers = map[string]bool{
	WatcherAuto:     true,
	WatcherFsnotify: true,
	WatcherPoll:     true,
}

// Default timing parameters.
const (
	DefaultDebounce     = 300 * time.Millisecond
	DefaultPollInterval = 2 * time.Second
)

// Config holds the parameters for opening a board: where it lives, which
// change-detection backend to use, and the timing knobs for both backends.
type Config struct {
	BoardDir     string        `json:"board_dir" yaml:"board_dir"`
	Watcher      string        `json:"watcher" yaml:"watcher"`
	Debounce     time.Duration `json:"debounce" yaml:"debounce"`
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`
}

// Normalized returns a copy with zero-valued fields replaced by defaults.
func (c Config) Normalized() Config {
	if c.Watcher == "" {
		c.Watcher = WatcherAuto
	}
	if c.Debounce == 0 {
		c.Debounce = DefaultDebounce
	}
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	return c
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Watcher != "" && !knownWatchers[c.Watcher] {
		return ErrWatcherUnknown
	}
	if c.Debounce < 0 {
		return ErrDebounceInvalid
	}
	if c.PollInterval < 0 {
		return ErrPollIntervalInvalid
	}
	return nil
}
