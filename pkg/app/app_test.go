package app

import (
	"testing"
	"time"

	"github.com/decker502/arithmetron/pkg/config"
)

func TestClampFrameMs(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-5, 0},
		{0, 0},
		{16.7, 16.7},
		{MaxFrameMs, MaxFrameMs},
		{2500, MaxFrameMs},
	}
	for _, tt := range tests {
		if got := clampFrameMs(tt.in); got != tt.want {
			t.Errorf("clampFrameMs(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFrameDelta(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	a := &App{
		gameConfig: config.DefaultGameConfig(),
		clock:      func() time.Time { return now },
	}

	// 首帧使用标称帧时长
	if got, want := a.frameDelta(), a.gameConfig.FrameDurationMs(); got != want {
		t.Errorf("First frame: got %v, want %v", got, want)
	}

	now = now.Add(20 * time.Millisecond)
	if got := a.frameDelta(); got != 20 {
		t.Errorf("Second frame: got %v, want 20", got)
	}

	// 长时间停顿被截断
	now = now.Add(3 * time.Second)
	if got := a.frameDelta(); got != MaxFrameMs {
		t.Errorf("After stall: got %v, want %v", got, MaxFrameMs)
	}
}

func TestLayoutUsesConfiguredScreen(t *testing.T) {
	cfg := config.DefaultGameConfig()
	a := &App{gameConfig: cfg}
	w, h := a.Layout(1920, 1080)
	if w != int(cfg.Screen.Width) || h != int(cfg.Screen.Height) {
		t.Errorf("Layout: got %dx%d, want %vx%v", w, h, cfg.Screen.Width, cfg.Screen.Height)
	}
}

func TestNewAppRequiresConfig(t *testing.T) {
	if _, err := NewApp(Config{}); err != ErrNilGameConfig {
		t.Errorf("NewApp(Config{}): got %v, want ErrNilGameConfig", err)
	}
}
