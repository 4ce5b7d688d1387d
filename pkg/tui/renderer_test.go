package tui

import (
	"strings"
	"testing"

	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/session"
	"github.com/decker502/arithmetron/pkg/stats"
	"github.com/gdamore/tcell/v2"
)

type fixedStats struct{ summary stats.Summary }

func (f fixedStats) Snapshot() stats.Summary { return f.summary }

// newTestScreen 创建 80x24 的模拟屏幕
func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	return screen
}

// rowText 读取一行文字
func rowText(screen tcell.Screen, row int) string {
	cols, _ := screen.Size()
	var sb strings.Builder
	for col := 0; col < cols; col++ {
		r, _, _, _ := screen.GetContent(col, row)
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// screenText 读取整个屏幕
func screenText(screen tcell.Screen) string {
	_, rows := screen.Size()
	lines := make([]string, rows)
	for row := range lines {
		lines[row] = rowText(screen, row)
	}
	return strings.Join(lines, "\n")
}

func TestGlyphFor(t *testing.T) {
	tests := []struct {
		name string
		view session.EntityView
		want rune
	}{
		{"player", session.EntityView{Kind: components.BehaviorPlayer}, 'A'},
		{"enemy", session.EntityView{Kind: components.BehaviorEnemy}, 'V'},
		{"laser straight", session.EntityView{Kind: components.BehaviorProjectile}, '|'},
		{"laser right", session.EntityView{Kind: components.BehaviorProjectile, Rotation: -45}, '/'},
		{"laser left", session.EntityView{Kind: components.BehaviorProjectile, Rotation: 45}, '\\'},
		{"laser flat", session.EntityView{Kind: components.BehaviorProjectile, Rotation: -90}, '-'},
		{"laser down-left", session.EntityView{Kind: components.BehaviorProjectile, Rotation: 135}, '/'},
		{"laser down-right", session.EntityView{Kind: components.BehaviorProjectile, Rotation: -135}, '\\'},
		{"laser down", session.EntityView{Kind: components.BehaviorProjectile, Rotation: 180}, '|'},
		{"laser flat left", session.EntityView{Kind: components.BehaviorProjectile, Rotation: 90}, '-'},
		{"explosion first frame", session.EntityView{Kind: components.BehaviorExplosion, FrameID: "IMAGE_EXPLOSION_1"}, '.'},
		{"explosion peak", session.EntityView{Kind: components.BehaviorExplosion, FrameID: "IMAGE_EXPLOSION_4"}, '@'},
		{"explosion no frame", session.EntityView{Kind: components.BehaviorExplosion}, '*'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := GlyphFor(tt.view); got != tt.want {
				t.Errorf("GlyphFor: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRendererPlay(t *testing.T) {
	screen := newTestScreen(t)
	cfg := config.DefaultGameConfig()
	r := NewRenderer(screen, cfg, nil)

	snap := session.Snapshot{
		Entities: []session.EntityView{
			{ID: 1, Kind: components.BehaviorPlayer, X: 400, Y: 730},
			{ID: 2, Kind: components.BehaviorEnemy, X: 100, Y: 200, Problem: "3+4"},
		},
		HUD: session.HUD{
			Score: 50, Lives: 2, MaxLives: 3, Stage: 1, StageCount: 15,
			Input: "7", CursorVisible: true, Quota: 3,
		},
		Overlay: session.Overlay{State: session.StatePlay},
	}
	r.Render(snap)

	hud := rowText(screen, 0)
	for _, want := range []string{"SCORE 50", "LIVES 2/3", "STAGE 1/15"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q should contain %q", hud, want)
		}
	}
	if input := rowText(screen, 23); !strings.HasPrefix(input, "> 7_") {
		t.Errorf("Input row: got %q, want prefix \"> 7_\"", input)
	}

	vp := NewViewport(80, 24, cfg.Screen.Width, cfg.Screen.Height)
	col, row, _ := vp.ToCell(100, 200)
	if got, _, _, _ := screen.GetContent(col, row); got != 'V' {
		t.Errorf("Enemy glyph at (%d, %d): got %q, want 'V'", col, row, got)
	}
	if !strings.Contains(rowText(screen, row), "3+4") {
		t.Errorf("Enemy row should show its problem: %q", rowText(screen, row))
	}
	if !strings.Contains(rowText(screen, vp.BoundaryRow(cfg.BoundaryY())), "____") {
		t.Error("Boundary line should be drawn in play")
	}
}

func TestRendererOverlays(t *testing.T) {
	tests := []struct {
		name    string
		overlay session.Overlay
		want    string
	}{
		{"menu", session.Overlay{State: session.StateMenu}, "A R I T H M E T R O N"},
		{"paused", session.Overlay{State: session.StatePaused}, "PAUSED"},
		{"stage cleared", session.Overlay{State: session.StateStageCleared, CanAdvance: true}, "ENTER for next stage"},
		{"game cleared", session.Overlay{State: session.StateGameCleared, FinalScore: 1540}, "FINAL SCORE 1540"},
		{"game over", session.Overlay{State: session.StateGameOver, FinalScore: 30}, "GAME OVER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newTestScreen(t)
			r := NewRenderer(screen, config.DefaultGameConfig(), nil)
			r.Render(session.Snapshot{Overlay: tt.overlay, HUD: session.HUD{Stage: 1, StageCount: 15}})
			if text := screenText(screen); !strings.Contains(text, tt.want) {
				t.Errorf("Screen should contain %q:\n%s", tt.want, text)
			}
		})
	}
}

func TestRendererStatsPopup(t *testing.T) {
	screen := newTestScreen(t)
	r := NewRenderer(screen, config.DefaultGameConfig(), fixedStats{stats.Summary{HighestStage: 4, Annihilated: 21}})
	menu := session.Snapshot{Overlay: session.Overlay{State: session.StateMenu}}

	r.Render(menu)
	if strings.Contains(screenText(screen), "Annihilated") {
		t.Fatal("Stats popup should be hidden by default")
	}

	r.SetShowStats(true)
	r.Render(menu)
	if text := screenText(screen); !strings.Contains(text, "Highest level 4   Annihilated 21") {
		t.Errorf("Stats popup missing:\n%s", text)
	}
}
