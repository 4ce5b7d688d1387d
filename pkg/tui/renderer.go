package tui

import (
	"fmt"
	"strings"

	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/session"
	"github.com/decker502/arithmetron/pkg/stats"
	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault  = tcell.StyleDefault
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleEnemy    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleProblem  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleLaser    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBoom     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleBoundary = tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleInput    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// explosionGlyphs 爆炸动画每帧对应的字符
var explosionGlyphs = []rune{'.', 'o', 'O', '@', '*', '+', '.'}

// GlyphFor 返回实体的显示字符和样式
func GlyphFor(v session.EntityView) (rune, tcell.Style) {
	switch v.Kind {
	case components.BehaviorPlayer:
		return 'A', stylePlayer
	case components.BehaviorEnemy:
		return 'V', styleEnemy
	case components.BehaviorProjectile:
		return laserGlyph(v.Rotation), styleLaser
	case components.BehaviorExplosion:
		return explosionGlyph(v.FrameID), styleBoom
	}
	return '?', styleDefault
}

// laserGlyph 按飞行方向选择字符；0 度为竖直向上，角度逆时针为正
// 线段字符与方向无关，先把角度折叠到 (-90, 90]
func laserGlyph(rotation float64) rune {
	rotation = components.NormalizeDegrees(rotation)
	if rotation > 90 {
		rotation -= 180
	} else if rotation <= -90 {
		rotation += 180
	}
	switch {
	case rotation > 60 || rotation < -60:
		return '-'
	case rotation < -20:
		return '/'
	case rotation > 20:
		return '\\'
	}
	return '|'
}

// explosionGlyph 从帧ID末尾的序号选择字符
func explosionGlyph(frameID string) rune {
	idx := strings.LastIndexByte(frameID, '_')
	if idx < 0 {
		return '*'
	}
	var n int
	if _, err := fmt.Sscanf(frameID[idx+1:], "%d", &n); err != nil || n < 1 {
		return '*'
	}
	return explosionGlyphs[(n-1)%len(explosionGlyphs)]
}

// statsSource 统计弹窗的数据来源，由 *stats.Tracker 实现
type statsSource interface {
	Snapshot() stats.Summary
}

// Renderer 把会话快照绘制到 tcell 屏幕，实现 session.Renderer
type Renderer struct {
	screen    tcell.Screen
	config    *config.GameConfig
	stats     statsSource // 可为 nil
	showStats bool
	muted     bool
}

// NewRenderer 创建终端渲染器
func NewRenderer(screen tcell.Screen, cfg *config.GameConfig, stats statsSource) *Renderer {
	return &Renderer{screen: screen, config: cfg, stats: stats}
}

// SetShowStats 设置是否显示统计弹窗
func (r *Renderer) SetShowStats(show bool) { r.showStats = show }

// ShowStats 返回是否显示统计弹窗
func (r *Renderer) ShowStats() bool { return r.showStats }

// SetMuted 设置 HUD 中的静音标记
func (r *Renderer) SetMuted(muted bool) { r.muted = muted }

// Render 实现 session.Renderer
func (r *Renderer) Render(snap session.Snapshot) {
	r.screen.Clear()
	cols, rows := r.screen.Size()
	vp := NewViewport(cols, rows, r.config.Screen.Width, r.config.Screen.Height)

	state := snap.Overlay.State
	inGame := state != session.StateMenu && state != session.StateLaunchAnimation
	if inGame {
		r.drawBoundary(vp)
	}
	r.drawEntities(vp, snap.Entities)
	if inGame {
		r.drawHUD(vp, snap.HUD)
	}
	r.drawOverlay(vp, snap)
	r.screen.Show()
}

func (r *Renderer) drawBoundary(vp Viewport) {
	row := vp.BoundaryRow(r.config.BoundaryY())
	for col := 0; col < vp.Cols; col++ {
		r.screen.SetContent(col, row, '_', nil, styleBoundary)
	}
}

// drawEntities 先画字符，再把敌人题目写在字符右侧
func (r *Renderer) drawEntities(vp Viewport, views []session.EntityView) {
	for _, v := range views {
		col, row, ok := vp.ToCell(v.X, v.Y)
		if !ok {
			continue
		}
		glyph, style := GlyphFor(v)
		r.screen.SetContent(col, row, glyph, nil, style)
	}
	for _, v := range views {
		if v.Kind != components.BehaviorEnemy || v.Problem == "" {
			continue
		}
		col, row, ok := vp.ToCell(v.X, v.Y)
		if !ok {
			continue
		}
		r.drawString(col+2, row, v.Problem, styleProblem)
	}
}

func (r *Renderer) drawHUD(vp Viewport, hud session.HUD) {
	line := fmt.Sprintf(" SCORE %d  LIVES %d/%d  STAGE %d/%d  %d/%d ",
		hud.Score, hud.Lives, hud.MaxLives, hud.Stage, hud.StageCount, hud.Cleared, hud.Quota)
	if r.muted {
		line += " MUTED "
	}
	r.fillRow(0, vp.Cols, styleHUD)
	r.drawString(0, 0, line, styleHUD)

	input := "> " + hud.Input
	if hud.CursorVisible {
		input += "_"
	}
	r.drawString(0, vp.InputRow(), input, styleInput)
}

func (r *Renderer) drawOverlay(vp Viewport, snap session.Snapshot) {
	mid := vp.Rows / 2
	switch snap.Overlay.State {
	case session.StateMenu:
		r.drawCentered(vp, mid-1, "A R I T H M E T R O N", styleTitle)
		r.drawCentered(vp, mid+1, "ENTER launch   S stats   M mute   Q quit", styleDefault)
		if r.showStats {
			var summary stats.Summary
			if r.stats != nil {
				summary = r.stats.Snapshot()
			}
			r.drawCentered(vp, mid+3, fmt.Sprintf("Highest level %d   Annihilated %d", summary.HighestStage, summary.Annihilated), styleHUD)
		}
	case session.StatePaused:
		r.drawCentered(vp, mid, "PAUSED  (P resume, R menu)", styleTitle)
	case session.StateStageCleared:
		r.drawCentered(vp, mid, fmt.Sprintf("STAGE %d CLEARED", snap.HUD.Stage), styleTitle)
		if snap.Overlay.CanAdvance {
			r.drawCentered(vp, mid+1, "ENTER for next stage", styleDefault)
		}
	case session.StateGameCleared:
		r.drawCentered(vp, mid, "ALL STAGES CLEARED", styleTitle)
		r.drawCentered(vp, mid+1, fmt.Sprintf("FINAL SCORE %d   R menu", snap.Overlay.FinalScore), styleDefault)
	case session.StateGameOver:
		r.drawCentered(vp, mid, "GAME OVER", styleEnemy.Bold(true))
		r.drawCentered(vp, mid+1, fmt.Sprintf("FINAL SCORE %d   R menu", snap.Overlay.FinalScore), styleDefault)
	}
}

func (r *Renderer) drawCentered(vp Viewport, row int, s string, style tcell.Style) {
	col := (vp.Cols - len([]rune(s))) / 2
	if col < 0 {
		col = 0
	}
	r.drawString(col, row, s, style)
}

func (r *Renderer) drawString(col, row int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(col, row, ch, nil, style)
		col++
	}
}

func (r *Renderer) fillRow(row, cols int, style tcell.Style) {
	for col := 0; col < cols; col++ {
		r.screen.SetContent(col, row, ' ', nil, style)
	}
}
