package main

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/audio"
	"github.com/vovakirdan/snake-arena/internal/config"
)

// newSound opens the speaker unless sound is disabled by flag or config.
// A machine without an audio device plays silently.
func newSound(logger *log.Logger) (audio.Sink, func()) {
	if flagMute {
		return audio.Nop{}, func() {}
	}

	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		logger.Warn("config not loaded, using default audio settings", "err", err)
	}
	if !cfg.Audio.Enabled {
		return audio.Nop{}, func() {}
	}

	player := audio.NewPlayer(cfg.Audio.Volume)
	if err := player.Initialize(); err != nil {
		logger.Warn("audio unavailable", "err", err)
		return audio.Nop{}, func() {}
	}
	return player, player.Cleanup
}
