package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/session"
	"github.com/gdamore/tcell/v2"
)

const frameMs = 1000.0 / 60

// newTestGame 创建使用模拟屏幕和未初始化扬声器的主循环
func newTestGame(t *testing.T) (*Game, tcell.SimulationScreen) {
	t.Helper()
	screen := newTestScreen(t)
	cfg := config.DefaultGameConfig()
	stages, err := config.NewStageTable([]config.Stage{
		{SpawnIntervalMs: 1e9, EnemySpeed: 1, EnemiesToClear: 1},
	})
	if err != nil {
		t.Fatalf("NewStageTable() error: %v", err)
	}
	beeper := NewBeeper()
	sess, err := session.New(cfg, stages, rand.New(rand.NewSource(1)), beeper, nil)
	if err != nil {
		t.Fatalf("session.New() error: %v", err)
	}
	return NewGame(screen, sess, NewRenderer(screen, cfg, nil), beeper), screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestGameLaunchAndType(t *testing.T) {
	g, screen := newTestGame(t)

	g.HandleEvent(key(tcell.KeyEnter))
	if got := g.session.State(); got != session.StateLaunchAnimation {
		t.Fatalf("State after Enter in menu: got %v, want LaunchAnimation", got)
	}
	for i := 0; i < 200 && g.session.State() != session.StatePlay; i++ {
		g.Step(frameMs)
	}
	if got := g.session.State(); got != session.StatePlay {
		t.Fatalf("State after launch: got %v, want Play", got)
	}
	if got := g.beeper.Track(); got != session.TrackGame {
		t.Errorf("Track in play: got %q, want %q", got, session.TrackGame)
	}

	g.HandleEvent(char('1'))
	g.HandleEvent(char('2'))
	g.HandleEvent(key(tcell.KeyBackspace2))
	g.Step(frameMs)
	if got := g.session.Snapshot().HUD.Input; got != "1" {
		t.Errorf("Input: got %q, want 1", got)
	}
	if !strings.Contains(rowText(screen, 0), "SCORE 0") {
		t.Errorf("HUD row: %q", rowText(screen, 0))
	}
}

func TestGameStatsAndMute(t *testing.T) {
	g, _ := newTestGame(t)

	g.HandleEvent(char('s'))
	if !g.renderer.ShowStats() {
		t.Fatal("Stats popup should open in menu")
	}
	g.HandleEvent(char('m'))
	if !g.beeper.Muted() || !g.renderer.muted {
		t.Error("M should mute and show the marker")
	}

	g.HandleEvent(char(' '))
	if g.renderer.ShowStats() {
		t.Error("Stats popup should close once the game starts")
	}
}

func TestGameRunStopsOnQuit(t *testing.T) {
	g, screen := newTestGame(t)

	done := make(chan struct{})
	go func() {
		g.Run(context.Background())
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	if !g.session.QuitRequested() {
		t.Error("Session should record the quit request")
	}
}

func TestGameRunStopsOnCancel(t *testing.T) {
	g, _ := newTestGame(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()
	time.Sleep(3 * TickInterval)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
