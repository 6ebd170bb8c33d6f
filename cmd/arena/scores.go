package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

var (
	flagScoresTUI    bool
	flagScoresRecent bool
	flagScoresLimit  int
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs for a mode",
	Long: `Display the best runs for the specified mode (default: snake).

Examples:
  arena scores
  arena scores snake_walls --recent
  arena scores --tui
  arena scores snake --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every run and score for the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "snake"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'arena list' to see available modes", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, width, height)
		return err
	}

	if flagScoresClear {
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s.\n", gameID)
		return nil
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	var runs []storage.RunEntry
	heading := "Best Runs"
	if flagScoresRecent {
		heading = "Recent Runs"
		runs, err = store.RecentRuns(gameID, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("%s - %s\n", heading, game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arena play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-5s  %-6s  %-10s  %s\n", "Rank", "Score", "Len", "Time", "Cause", "Date")
	fmt.Printf("  %-4s  %-7s  %-5s  %-6s  %-10s  %s\n", "----", "-----", "---", "----", "-----", "----")

	for i, r := range runs {
		secs := int(r.Duration.Seconds())
		fmt.Printf("  %-4d  %-7d  %-5d  %-6s  %-10s  %s\n",
			i+1, r.Score, r.Length, fmt.Sprintf("%d:%02d", secs/60, secs%60), r.Cause,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Games: %d  Longest: %d  Played: %s\n",
			stats.HighScore, stats.GamesCount, stats.LongestSnake, stats.TimePlayed.Round(time.Second))
	}
	return nil
}
