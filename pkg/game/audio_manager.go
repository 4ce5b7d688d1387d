package game

import (
	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"
)

// 音频资源ID
const (
	SoundLaser       = "SOUND_LASER"
	SoundExplosion   = "SOUND_EXPLOSION"
	SoundScore       = "SOUND_SCORE"
	SoundStageClear  = "SOUND_STAGE_CLEAR"
	SoundGameOver    = "SOUND_GAME_OVER"
	SoundButtonHover = "SOUND_BUTTON_HOVER"
	MusicMenu        = "MUSIC_MENU"
	MusicGame        = "MUSIC_GAME"
)

// VolumeStep 每次按键调整的音量
const VolumeStep = 0.1

// AudioManager 音频管理器
// 通过资源ID播放音效和背景音乐，音量和开关从 SettingsManager 读取。
// 资源缺失时静默失败，每个ID只记录一次警告。
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager // 可为 nil，使用默认音量

	soundPlayers   map[string]*audio.Player
	musicPlayers   map[string]*audio.Player
	missing        map[string]bool
	currentMusic   *audio.Player
	currentMusicID string

	logger zerolog.Logger
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
		musicPlayers:    make(map[string]*audio.Player),
		missing:         make(map[string]bool),
		logger:          logging.For("AudioManager"),
	}
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if !am.settings().SoundEnabled {
		return false
	}

	player := am.player(soundID, am.soundPlayers, am.resourceManager.LoadSoundEffect)
	if player == nil {
		return false
	}

	player.SetVolume(am.settings().SoundVolume)
	if err := player.Rewind(); err != nil {
		am.logger.Warn().Err(err).Str("sound", soundID).Msg("failed to rewind sound")
	}
	player.Play()
	return true
}

// PlayMusic 播放背景音乐（循环）
// 同一时间只播放一首，重复请求正在播放的曲目不会重新开始
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayMusic(musicID string) bool {
	if !am.settings().MusicEnabled {
		return false
	}
	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	am.StopMusic()

	player := am.player(musicID, am.musicPlayers, am.resourceManager.LoadAudio)
	if player == nil {
		return false
	}

	volume := am.settings().MusicVolume
	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		am.logger.Warn().Err(err).Str("music", musicID).Msg("failed to rewind music")
	}
	player.Play()

	am.currentMusic = player
	am.currentMusicID = musicID
	am.logger.Debug().Str("music", musicID).Float64("volume", volume).Msg("playing music")
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
	}
	am.currentMusic = nil
	am.currentMusicID = ""
}

// CurrentMusic 返回当前播放的音乐ID
func (am *AudioManager) CurrentMusic() string {
	return am.currentMusicID
}

// AdjustVolume 同时调整音乐和音效音量，并立即应用到当前音乐
//
// 参数：
//   - delta: 音量增量，结果限制在 0.0 ~ 1.0
func (am *AudioManager) AdjustVolume(delta float64) {
	if am.settingsManager == nil {
		return
	}
	s := am.settingsManager.GetSettings()
	am.settingsManager.SetMusicVolume(s.MusicVolume + delta)
	am.settingsManager.SetSoundVolume(s.SoundVolume + delta)

	if am.currentMusic != nil {
		am.currentMusic.SetVolume(s.MusicVolume)
	}
	if err := am.settingsManager.Save(); err != nil {
		am.logger.Warn().Err(err).Msg("failed to save volume")
	}
}

// GetMusicVolume 获取当前音乐音量
func (am *AudioManager) GetMusicVolume() float64 {
	return am.settings().MusicVolume
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.settings().SoundVolume
}

// Preload 预加载音效，避免首次播放时的延迟
func (am *AudioManager) Preload(soundIDs ...string) {
	for _, id := range soundIDs {
		am.player(id, am.soundPlayers, am.resourceManager.LoadSoundEffect)
	}
}

// player 从缓存获取或通过资源ID加载播放器
func (am *AudioManager) player(id string, cache map[string]*audio.Player, load func(string) (*audio.Player, error)) *audio.Player {
	if p, ok := cache[id]; ok {
		return p
	}
	if am.missing[id] || am.resourceManager == nil {
		return nil
	}

	path, ok := am.resourceManager.ResolvePath(id)
	if !ok {
		am.missing[id] = true
		am.logger.Warn().Str("id", id).Msg("audio resource not configured")
		return nil
	}
	p, err := load(path)
	if err != nil {
		am.missing[id] = true
		am.logger.Warn().Err(err).Str("id", id).Msg("audio unavailable, continuing silently")
		return nil
	}
	cache[id] = p
	return p
}

// settings 返回当前设置，没有设置管理器时使用默认值
func (am *AudioManager) settings() *GameSettings {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings()
	}
	return DefaultSettings()
}
