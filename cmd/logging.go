package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/edusticker/internal/store"
)

const logFileName = "edusticker.log"

// tuiCommands take over the terminal, so their logs go to a file.
var tuiCommands = map[string]bool{"edusticker": true, "play": true}

// logFile is the open TUI log, closed by closeLogging.
var logFile *os.File

// setupLogging configures the global zerolog logger from --log-level.
func setupLogging(cmd *cobra.Command) error {
	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", levelName, err)
	}
	zerolog.SetGlobalLevel(level)

	if !tuiCommands[cmd.Name()] {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
		return nil
	}

	dir, err := store.DataDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, logFileName)
	if err := store.EnsureDir(path); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return nil
}

func closeLogging() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
