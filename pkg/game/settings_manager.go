package game

import (
	"fmt"

	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// GameSettings 全局设置（音量、开关、全屏）
type GameSettings struct {
	MusicVolume  float64 `yaml:"musicVolume"`  // 0.0 ~ 1.0
	SoundVolume  float64 `yaml:"soundVolume"`  // 0.0 ~ 1.0
	MusicEnabled bool    `yaml:"musicEnabled"`
	SoundEnabled bool    `yaml:"soundEnabled"`
	Fullscreen   bool    `yaml:"fullscreen"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		MusicVolume:  0.7,
		SoundVolume:  0.8,
		MusicEnabled: true,
		SoundEnabled: true,
	}
}

// 存储位置
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// SettingsManager 设置的加载、保存和内存管理
// gdata 为 nil 时进入降级模式：设置只保存在内存中
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *GameSettings
	logger       zerolog.Logger
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败时使用默认设置，不返回错误
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		logger:       logging.For("SettingsManager"),
	}
	if err := sm.Load(); err != nil {
		sm.logger.Warn().Err(err).Msg("failed to load settings, using defaults")
	}
	return sm
}

// Load 从 gdata 加载设置
// 失败时保留默认设置并返回错误
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.MusicVolume = clampVolume(loaded.MusicVolume)
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	sm.logger.Debug().Msg("settings loaded")
	return nil
}

// Save 保存设置到 gdata，降级模式下什么也不做
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetMusicVolume 设置音乐音量（限制在 0.0 ~ 1.0），需调用 Save 持久化
func (sm *SettingsManager) SetMusicVolume(volume float64) {
	sm.settings.MusicVolume = clampVolume(volume)
}

// SetSoundVolume 设置音效音量（限制在 0.0 ~ 1.0），需调用 Save 持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetMuted 静音时同时关闭音乐和音效
func (sm *SettingsManager) SetMuted(muted bool) {
	sm.settings.MusicEnabled = !muted
	sm.settings.SoundEnabled = !muted
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
