package tui

import (
	"testing"
	"time"

	"github.com/decker502/arithmetron/pkg/session"
	"github.com/gopxl/beep"
)

// streamLen 读完流并返回采样数
func streamLen(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestCueStreamerLength(t *testing.T) {
	for cue, tones := range cueTones {
		s, err := CueStreamer(SampleRate, cue)
		if err != nil {
			t.Fatalf("CueStreamer(%s) error: %v", cue, err)
		}
		want := 0
		for _, tn := range tones {
			want += SampleRate.N(tn.duration)
		}
		if got := streamLen(s); got != want {
			t.Errorf("CueStreamer(%s): got %d samples, want %d", cue, got, want)
		}
	}
}

func TestCueStreamerCoversAllCues(t *testing.T) {
	cues := []session.Cue{
		session.CueLaser, session.CueExplosion, session.CueScore,
		session.CueStageClear, session.CueGameOver, session.CueButtonHover,
	}
	for _, cue := range cues {
		if _, err := CueStreamer(SampleRate, cue); err != nil {
			t.Errorf("CueStreamer(%s) error: %v", cue, err)
		}
	}
	if _, err := CueStreamer(SampleRate, session.Cue("bogus")); err == nil {
		t.Error("Unknown cue should fail")
	}
}

func TestCueStreamerShort(t *testing.T) {
	for cue, tones := range cueTones {
		var total time.Duration
		for _, tn := range tones {
			total += tn.duration
		}
		if total > time.Second {
			t.Errorf("Cue %s lasts %v, should stay under a second", cue, total)
		}
	}
}

// TestBeeperUninitialized 没有扬声器时所有调用都是空操作
func TestBeeperUninitialized(t *testing.T) {
	b := NewBeeper()
	b.PlayCue(session.CueLaser)

	b.PlayMusic(session.TrackMenu)
	if got := b.Track(); got != session.TrackMenu {
		t.Errorf("Track: got %q, want %q", got, session.TrackMenu)
	}
	b.StopMusic()
	if got := b.Track(); got != "" {
		t.Errorf("Track after stop: got %q, want empty", got)
	}

	if !b.ToggleMute() || !b.Muted() {
		t.Error("ToggleMute should mute")
	}
	b.SetMuted(false)
	if b.Muted() {
		t.Error("SetMuted(false) should unmute")
	}
	b.Close()
}
