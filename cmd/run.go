package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/edusticker/internal/app"
)

const exitFlushTimeout = 10 * time.Second

// runApp opens the store, builds the controller, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	defer closeLogging()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	b, err := openBackend(ctx, dbPath)
	if err != nil {
		return err
	}
	defer b.Close()

	ctrl := newController(ctx, b, app.NewBell(os.Stderr))
	runErr := app.Run(ctrl)

	flushCtx, cancel := context.WithTimeout(context.Background(), exitFlushTimeout)
	defer cancel()
	if err := ctrl.Flush(flushCtx); err != nil {
		log.Error().Err(err).Msg("final profile save failed")
		if runErr == nil {
			return fmt.Errorf("saving progress: %w", err)
		}
	}
	return runErr
}
