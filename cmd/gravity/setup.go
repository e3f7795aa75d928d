package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-gravity/internal/config"
	"github.com/vovakirdan/tui-gravity/internal/levels"
	"github.com/vovakirdan/tui-gravity/internal/storage"
)

// newLogger returns the CLI logger.
func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gravity",
	})
}

// loadGameConfig loads the gameplay config and applies the pace and sound flags.
func loadGameConfig() (config.GravityConfig, error) {
	cfg, err := config.LoadGravity(flagConfig)
	if err != nil {
		return cfg, err
	}

	pace, err := config.ParsePace(flagPace)
	if err != nil {
		return cfg, err
	}
	config.ApplyPacePreset(&cfg, pace)

	if flagSound {
		cfg.Audio.Enabled = true
	}
	return cfg, nil
}

// loadPack loads the level pack named by --levels, or the default one.
func loadPack() (*levels.Pack, error) {
	return levels.Load(flagLevels)
}

// openStore opens the progress database. Failure is logged and play continues
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open progress database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// sessionLogger returns the logger used while the TUI owns the terminal. It
// writes to --log-file at debug level, or nowhere.
func sessionLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "gravity",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
