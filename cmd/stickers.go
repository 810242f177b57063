package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edusticker/internal/catalog"
)

var stickersCmd = &cobra.Command{
	Use:   "stickers",
	Short: "List the sticker catalog and milestones",
	RunE: func(cmd *cobra.Command, args []string) error {
		rarity, _ := cmd.Flags().GetString("rarity")
		if rarity != "" && !catalog.Rarity(rarity).Valid() {
			return fmt.Errorf("unknown rarity %q (want common, rare or epic)", rarity)
		}

		cat := catalog.Default()
		fmt.Printf("%-5s  %-20s  %-7s  %s\n", "ID", "Name", "Rarity", "Description")
		fmt.Println(strings.Repeat("─", 80))
		for _, s := range cat.Stickers() {
			if rarity != "" && string(s.Rarity) != rarity {
				continue
			}
			fmt.Printf("%-5s  %-20s  %-7s  %s\n", s.ID, truncate(s.Name, 20), s.Rarity, s.Description)
		}

		if rarity == "" {
			fmt.Println()
			fmt.Println("Milestones")
			fmt.Println(strings.Repeat("─", 80))
			for _, m := range cat.Milestones() {
				fmt.Printf("%-5s  %3d  %s\n", m.ID, m.Threshold, m.Message)
			}
		}
		return nil
	},
}

func init() {
	stickersCmd.Flags().String("rarity", "", "Only list stickers of this rarity")
}
