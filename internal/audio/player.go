package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Sink consumes cue names once per frame.
type Sink interface {
	Play(cues []string)
}

// Nop discards every cue.
type Nop struct{}

// Play implements Sink.
func (Nop) Play([]string) {}

// maxCuesPerFrame bounds how many sounds start in one frame so a burst of
// events does not clip.
const maxCuesPerFrame = 3

// Player plays cues through the speaker. The zero value is silent until
// Initialize succeeds.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
}

// NewPlayer creates a player at the given linear volume.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play implements Sink. Repeated names within a frame play once.
func (p *Player) Play(cues []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted || len(cues) == 0 {
		return
	}

	streams := Streams(cues, p.volume, SampleRate)
	speaker.Lock()
	p.mixer.Add(streams...)
	speaker.Unlock()
}

// Streams builds the streamers for one frame of cues, dropping duplicates,
// unknown names and anything past the per-frame limit.
func Streams(cues []string, volume float64, rate beep.SampleRate) []beep.Streamer {
	var out []beep.Streamer
	seen := make(map[string]bool, len(cues))
	for _, c := range cues {
		if seen[c] || len(out) >= maxCuesPerFrame {
			continue
		}
		seen[c] = true
		if s := Cue(c, volume, rate); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// ToggleMute flips mute and returns true if sound is now on.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return !p.muted
}

// SetMuted sets mute.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Muted reports whether the player is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Cleanup silences everything still playing.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
