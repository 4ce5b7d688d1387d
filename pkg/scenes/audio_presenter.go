package scenes

import (
	"github.com/decker502/arithmetron/pkg/game"
	"github.com/decker502/arithmetron/pkg/session"
)

// audioOutput AudioPresenter 依赖的音频能力，由 *game.AudioManager 实现
type audioOutput interface {
	PlaySound(soundID string) bool
	PlayMusic(musicID string) bool
	StopMusic()
}

var cueSounds = map[session.Cue]string{
	session.CueLaser:       game.SoundLaser,
	session.CueExplosion:   game.SoundExplosion,
	session.CueScore:       game.SoundScore,
	session.CueStageClear:  game.SoundStageClear,
	session.CueGameOver:    game.SoundGameOver,
	session.CueButtonHover: game.SoundButtonHover,
}

var trackMusic = map[session.Track]string{
	session.TrackMenu: game.MusicMenu,
	session.TrackGame: game.MusicGame,
}

// AudioPresenter 将会话音效提示转为资源ID并交给音频管理器
type AudioPresenter struct {
	out audioOutput
}

// NewAudioPresenter 创建音频表现层
// out 为 nil 时所有调用都是空操作
func NewAudioPresenter(out audioOutput) *AudioPresenter {
	return &AudioPresenter{out: out}
}

// SoundForCue 返回提示音对应的资源ID
func SoundForCue(cue session.Cue) (string, bool) {
	id, ok := cueSounds[cue]
	return id, ok
}

// MusicForTrack 返回曲目对应的资源ID
func MusicForTrack(track session.Track) (string, bool) {
	id, ok := trackMusic[track]
	return id, ok
}

// PlayCue 实现 session.Presenter
func (p *AudioPresenter) PlayCue(cue session.Cue) {
	if p.out == nil {
		return
	}
	if id, ok := SoundForCue(cue); ok {
		p.out.PlaySound(id)
	}
}

// PlayMusic 实现 session.Presenter
func (p *AudioPresenter) PlayMusic(track session.Track) {
	if p.out == nil {
		return
	}
	if id, ok := MusicForTrack(track); ok {
		p.out.PlayMusic(id)
	}
}

// StopMusic 实现 session.Presenter
func (p *AudioPresenter) StopMusic() {
	if p.out != nil {
		p.out.StopMusic()
	}
}
