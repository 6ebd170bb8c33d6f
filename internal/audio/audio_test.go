package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/snake-arena/internal/games/snake/world"
)

// drain streams s to the end and returns the sample count and the peak.
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatalf("stream did not end within %d samples", limit)
	return total, peak
}

func TestOscillatorSquare(t *testing.T) {
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, SampleRate)

	samples := make([][2]float64, 50)
	n, ok := osc.Stream(samples)
	if !ok || n != 50 {
		t.Fatalf("Stream() = %d, %v, expected 50, true", n, ok)
	}
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1.0 && v != 1.0 {
			t.Errorf("square sample %d = %f, expected -1 or 1", i, v)
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	d := 100 * time.Millisecond
	n, _ := drain(t, NewOscillator(440, d, WaveSine, SampleRate), SampleRate.N(time.Second))
	if want := SampleRate.N(d); n != want {
		t.Errorf("oscillator length = %d, expected %d", n, want)
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	d := 100 * time.Millisecond
	s := NewEnvelope(NewOscillator(440, d, WaveSquare, SampleRate), d, 10*time.Millisecond, 10*time.Millisecond, SampleRate)

	samples := make([][2]float64, 1)
	s.Stream(samples)
	if samples[0][0] != 0 {
		t.Errorf("first sample = %f, expected 0 at the start of the attack", samples[0][0])
	}
}

func TestEveryWorldEventHasACue(t *testing.T) {
	limit := SampleRate.N(2 * time.Second)
	for _, e := range world.Events {
		t.Run(string(e), func(t *testing.T) {
			s := Cue(string(e), 1, SampleRate)
			if s == nil {
				t.Fatalf("Cue(%q) = nil, expected a sound", e)
			}
			n, peak := drain(t, s, limit)
			if n == 0 || peak == 0 {
				t.Errorf("Cue(%q) produced %d samples with peak %f", e, n, peak)
			}
		})
	}
}

func TestCueUnknown(t *testing.T) {
	if s := Cue("applause", 1, SampleRate); s != nil {
		t.Errorf("Cue(applause) = %v, expected nil", s)
	}
}

func TestCueZeroVolumeIsSilent(t *testing.T) {
	_, peak := drain(t, Cue(CueEat, 0, SampleRate), SampleRate.N(time.Second))
	if peak != 0 {
		t.Errorf("peak = %f, expected silence", peak)
	}
}

func TestStreams(t *testing.T) {
	tests := []struct {
		name string
		cues []string
		want int
	}{
		{"empty", nil, 0},
		{"duplicates collapse", []string{CueEat, CueEat, CueEat}, 1},
		{"unknown dropped", []string{CueEat, "applause"}, 1},
		{"limit per frame", []string{CueEat, CueTrap, CuePower, CuePortal, CueGameOver}, maxCuesPerFrame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Streams(tt.cues, 1, SampleRate)); got != tt.want {
				t.Errorf("len(Streams()) = %d, expected %d", got, tt.want)
			}
		})
	}
}

func TestPlayerWithoutSpeaker(t *testing.T) {
	p := NewPlayer(0.5)

	// Not initialized: Play is a no-op rather than touching the speaker.
	p.Play([]string{CueEat})

	if p.Muted() {
		t.Errorf("Muted() = true, expected false")
	}
	if on := p.ToggleMute(); on {
		t.Errorf("ToggleMute() = true, expected false (muted)")
	}
	p.SetMuted(false)
	if p.Muted() {
		t.Errorf("Muted() = true after SetMuted(false)")
	}
	p.Cleanup()
}
