package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edusticker/internal/catalog"
	"github.com/abhisek/edusticker/internal/game"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the top sticker collectors",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		ctx := context.Background()
		b, err := openBackend(ctx, dbPath)
		if err != nil {
			return err
		}
		defer b.Close()

		total := catalog.Default().Len()
		entries, err := game.BuildLeaderboard(ctx, b.profiles, total)
		if err != nil {
			return fmt.Errorf("build leaderboard: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No collectors yet.")
			return nil
		}

		fmt.Printf("%-5s  %-30s  %-9s  %s\n", "Rank", "Name", "Stickers", "Title")
		fmt.Println(strings.Repeat("─", 70))
		for i, e := range entries {
			if limit > 0 && i >= limit {
				break
			}
			fmt.Printf("%-5d  %-30s  %4d/%-4d  %s\n",
				e.Rank, truncate(e.Name, 30), e.UniqueStickers, total, e.Tier.Title())
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().Int("limit", 20, "Maximum number of rows to show (0 = all)")
}
