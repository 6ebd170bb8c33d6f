package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
)

var fruitsCmd = &cobra.Command{
	Use:   "fruits",
	Short: "List consumables and their spawn settings",
	Long: `Shows every consumable with the weight, unlock length and lifetime
from the effective configuration (--config and the search path apply).

Examples:
  arena fruits
  arena fruits --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runFruits,
}

func runFruits(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	ids := reg.IDs()
	sort.SliceStable(ids, func(i, j int) bool {
		ci, _ := reg.Config(ids[i])
		cj, _ := reg.Config(ids[j])
		if ci.Category != cj.Category {
			return ci.Category < cj.Category
		}
		return ci.ID < cj.ID
	})

	fmt.Printf("  %-2s  %-10s  %-16s  %-8s  %6s  %6s  %6s  %8s\n",
		"", "ID", "Name", "Category", "Weight", "Unlock", "Growth", "Lifetime")
	for _, id := range ids {
		c, _ := reg.Config(id)
		fmt.Printf("  %-2c  %-10s  %-16s  %-8s  %6d  %6d  %6s  %8s\n",
			c.Glyph, c.ID, c.Name, c.Category, c.Weight, c.Unlock, growth(c), lifetime(c))
	}
	return nil
}

func growth(c fruit.Config) string {
	if c.Growth <= 0 {
		return "-"
	}
	return fmt.Sprintf("+1/%d", c.Growth)
}

func lifetime(c fruit.Config) string {
	if c.Lifetime <= 0 {
		return "forever"
	}
	return fmt.Sprintf("%.0fs", c.Lifetime)
}
