package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake"
	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the specified mode (default: snake).

Controls:
  Arrows/hjkl  - Turn
  W            - Toggle wrap-around walls
  P/Space      - Pause
  R/Enter      - Restart (after game over)
  M            - Mute sound
  Ctrl+S       - Save a screenshot to ~/.arena/screenshots
  Esc/B        - Back
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Wrap-around walls, one rival, slow start
  normal - The configured defaults
  hard   - Solid walls, five rivals, fast start
  fixed  - Constant speed regardless of length

Without --difficulty a picker is shown first.

Examples:
  arena play
  arena play snake_walls
  arena play --difficulty hard
  arena play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := string(snake.ModeArena)
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'arena list' to see available modes", gameID)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	if flagDifficulty == "" {
		res, selErr := tui.RunDifficultySelector(cfg, config.DifficultyNormal)
		if selErr != nil {
			return selErr
		}
		if res.Quit || res.Back {
			return nil
		}
		snake.SetDifficultyPreset(string(res.Preset))
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sound, closeSound := newSound(logger)
	defer closeSound()

	logger.Debug("starting game", "mode", gameID, "seed", cfg.Seed, "fps", cfg.TickRate)
	if _, err := tui.Run(game, store, sound, cfg, logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
