// Package audio turns world events into short synthesized sound cues and
// plays them through the system speaker.
package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Cue names. They match the world's event names.
const (
	CueEat            = "eat"
	CueTrap           = "trap"
	CuePower          = "power"
	CueExplosion      = "explosion"
	CueCollision      = "collision"
	CueGameOver       = "game_over"
	CueRivalSpawn     = "rival_spawn"
	CueRivalDeath     = "rival_death"
	CueTransformPhase = "transform_phase"
	CuePortal         = "portal"
)

// Cues lists every cue with a sound.
var Cues = []string{
	CueEat, CueTrap, CuePower, CueExplosion, CueCollision,
	CueGameOver, CueRivalSpawn, CueRivalDeath, CueTransformPhase, CuePortal,
}

// Cue synthesizes the sound for name at the given linear volume. Unknown
// names return nil.
func Cue(name string, volume float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch name {
	case CueEat:
		s = beep.Mix(
			newVolume(tone(880, 90*time.Millisecond, WaveSine, rate), 0.7),
			newVolume(tone(1760, 90*time.Millisecond, WaveSine, rate), 0.3),
		)
	case CueTrap:
		s = tone(140, 180*time.Millisecond, WaveSaw, rate)
	case CuePower:
		s = beep.Seq(
			tone(660, 70*time.Millisecond, WaveSquare, rate),
			tone(990, 110*time.Millisecond, WaveSquare, rate),
		)
	case CueExplosion:
		s = beep.Mix(
			newVolume(NewEnvelope(NewOscillator(0, 450*time.Millisecond, WaveNoise, rate),
				450*time.Millisecond, 2*time.Millisecond, 400*time.Millisecond, rate), 0.8),
			newVolume(glide(120, 40, 450*time.Millisecond, WaveSine, rate), 0.6),
		)
	case CueCollision:
		s = tone(90, 150*time.Millisecond, WaveSquare, rate)
	case CueGameOver:
		s = beep.Seq(
			tone(523.25, 150*time.Millisecond, WaveSquare, rate),
			tone(392.00, 150*time.Millisecond, WaveSquare, rate),
			tone(261.63, 300*time.Millisecond, WaveSquare, rate),
		)
	case CueRivalSpawn:
		s = glide(330, 440, 120*time.Millisecond, WaveSine, rate)
	case CueRivalDeath:
		s = beep.Mix(
			newVolume(NewEnvelope(NewOscillator(0, 150*time.Millisecond, WaveNoise, rate),
				150*time.Millisecond, 2*time.Millisecond, 120*time.Millisecond, rate), 0.5),
			glide(440, 220, 150*time.Millisecond, WaveSaw, rate),
		)
	case CueTransformPhase:
		s = glide(220, 660, 200*time.Millisecond, WaveSaw, rate)
	case CuePortal:
		s = beep.Mix(
			newVolume(glide(660, 990, 160*time.Millisecond, WaveSine, rate), 0.6),
			newVolume(glide(990, 660, 160*time.Millisecond, WaveSine, rate), 0.4),
		)
	default:
		return nil
	}
	return newVolume(s, volume)
}
