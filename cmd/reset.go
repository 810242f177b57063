package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/edusticker/internal/lockout"
	"github.com/abhisek/edusticker/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local player data",
}

var resetCooldownCmd = &cobra.Command{
	Use:   "cooldown <email>",
	Short: "Clear a player's trivia cooldown on this device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		acct, err := s.AccountRepo().ByEmail(ctx, args[0])
		if err != nil {
			return fmt.Errorf("look up account: %w", err)
		}
		if acct == nil {
			return fmt.Errorf("no account for %s", args[0])
		}

		keeper := lockout.NewKeeper(s.LocalRepo(), nil)
		until, locked, err := keeper.Until(ctx, acct.ID)
		if err != nil {
			return fmt.Errorf("read cooldown: %w", err)
		}
		if !locked {
			fmt.Printf("%s has no active cooldown.\n", args[0])
			return nil
		}
		if err := keeper.Clear(ctx, acct.ID); err != nil {
			return fmt.Errorf("clear cooldown: %w", err)
		}
		fmt.Printf("Cleared cooldown for %s (was locked until %s).\n", args[0], until.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	resetCmd.AddCommand(resetCooldownCmd)
}
