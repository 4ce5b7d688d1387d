package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.MusicVolume != 0.7 || s.SoundVolume != 0.8 {
		t.Errorf("Volumes: got %v/%v, want 0.7/0.8", s.MusicVolume, s.SoundVolume)
	}
	if !s.MusicEnabled || !s.SoundEnabled || s.Fullscreen {
		t.Errorf("Unexpected toggles: %+v", s)
	}
}

// TestSettingsManagerDegraded 测试 gdata 为 nil 时只在内存中保存设置
func TestSettingsManagerDegraded(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetMusicVolume(0.3)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if sm.GetSettings().MusicVolume != 0.3 {
		t.Errorf("MusicVolume: got %v, want 0.3", sm.GetSettings().MusicVolume)
	}
}

// TestSettingsLoadSave 测试持久化往返
func TestSettingsLoadSave(t *testing.T) {
	m := openTestGdata(t, "arithmetron_test_settings")

	sm1 := NewSettingsManager(m)
	sm1.SetMusicVolume(0.5)
	sm1.SetSoundVolume(0.6)
	sm1.SetMuted(true)
	sm1.SetFullscreen(true)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got := NewSettingsManager(m).GetSettings()
	want := GameSettings{MusicVolume: 0.5, SoundVolume: 0.6, Fullscreen: true}
	if *got != want {
		t.Errorf("Loaded settings: got %+v, want %+v", *got, want)
	}
}

// TestSettingsLoadCorrupted 测试损坏的数据回退到默认设置
func TestSettingsLoadCorrupted(t *testing.T) {
	m := openTestGdata(t, "arithmetron_test_corrupted")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("musicVolume: [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(m)
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("Corrupted settings should fall back to defaults, got %+v", *sm.GetSettings())
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
}

// TestVolumeClamp 测试音量范围限制
func TestVolumeClamp(t *testing.T) {
	sm := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{0.0, 0.0},
		{1.0, 1.0},
		{-0.5, 0.0},
		{1.5, 1.0},
	}

	for _, tt := range tests {
		sm.SetMusicVolume(tt.input)
		sm.SetSoundVolume(tt.input)
		s := sm.GetSettings()
		if s.MusicVolume != tt.expected || s.SoundVolume != tt.expected {
			t.Errorf("volume(%v): got %v/%v, want %v", tt.input, s.MusicVolume, s.SoundVolume, tt.expected)
		}
	}
}
