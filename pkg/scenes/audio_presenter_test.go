package scenes

import (
	"testing"

	"github.com/decker502/arithmetron/pkg/game"
	"github.com/decker502/arithmetron/pkg/session"
)

func TestSoundForCue(t *testing.T) {
	tests := []struct {
		cue  session.Cue
		want string
	}{
		{session.CueLaser, game.SoundLaser},
		{session.CueExplosion, game.SoundExplosion},
		{session.CueScore, game.SoundScore},
		{session.CueStageClear, game.SoundStageClear},
		{session.CueGameOver, game.SoundGameOver},
		{session.CueButtonHover, game.SoundButtonHover},
	}
	for _, tt := range tests {
		got, ok := SoundForCue(tt.cue)
		if !ok || got != tt.want {
			t.Errorf("SoundForCue(%s): got (%q, %v), want %q", tt.cue, got, ok, tt.want)
		}
	}

	if _, ok := SoundForCue(session.Cue("unknown")); ok {
		t.Error("Unknown cue should not map to a sound")
	}
}

func TestMusicForTrack(t *testing.T) {
	if got, _ := MusicForTrack(session.TrackMenu); got != game.MusicMenu {
		t.Errorf("TrackMenu: got %q, want %q", got, game.MusicMenu)
	}
	if got, _ := MusicForTrack(session.TrackGame); got != game.MusicGame {
		t.Errorf("TrackGame: got %q, want %q", got, game.MusicGame)
	}
}

func TestAudioPresenterDelegates(t *testing.T) {
	audio := &fakeAudio{}
	p := NewAudioPresenter(audio)

	p.PlayCue(session.CueExplosion)
	p.PlayCue(session.Cue("unknown"))
	p.PlayMusic(session.TrackGame)
	p.StopMusic()

	if len(audio.sounds) != 1 || audio.sounds[0] != game.SoundExplosion {
		t.Errorf("Sounds: got %v, want [%s]", audio.sounds, game.SoundExplosion)
	}
	if len(audio.music) != 1 || audio.music[0] != game.MusicGame {
		t.Errorf("Music: got %v, want [%s]", audio.music, game.MusicGame)
	}
	if audio.stops != 1 {
		t.Errorf("Stops: got %d, want 1", audio.stops)
	}
}

func TestAudioPresenterNilOutput(t *testing.T) {
	p := NewAudioPresenter(nil)
	p.PlayCue(session.CueLaser)
	p.PlayMusic(session.TrackMenu)
	p.StopMusic()
}
