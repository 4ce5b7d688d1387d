package scenes

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/session"
	"github.com/decker502/arithmetron/pkg/stats"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor = color.RGBA{R: 8, G: 8, B: 24, A: 255}
	starColor       = color.RGBA{R: 200, G: 200, B: 230, A: 255}
	boundaryColor   = color.RGBA{R: 220, G: 60, B: 60, A: 200}
	hudColor        = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	labelColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	dimColor        = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	panelColor      = color.RGBA{R: 30, G: 30, B: 60, A: 230}
	accentColor     = color.RGBA{R: 250, G: 210, B: 60, A: 255}
)

func (s *GameScene) drawBackground(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	for _, st := range s.stars {
		vector.DrawFilledRect(screen, float32(st.X), float32(st.Y), st.Size, st.Size, starColor, false)
	}
}

// drawBoundary 绘制敌人越界判定线
func (s *GameScene) drawBoundary(screen *ebiten.Image) {
	y := float32(s.config.BoundaryY())
	vector.StrokeLine(screen, 0, y, float32(s.config.Screen.Width), y, 2, boundaryColor, false)
}

// drawEntities 按 ID 顺序绘制实体，敌人额外绘制题目
func (s *GameScene) drawEntities(screen *ebiten.Image, views []session.EntityView) {
	for _, v := range views {
		s.drawSprite(screen, v)
	}
	// 题目文字绘制在所有精灵之上
	for _, v := range views {
		if v.Kind == components.BehaviorEnemy && v.Problem != "" {
			s.drawCenteredText(screen, v.Problem, s.labelFont, v.X, v.Y, labelColor)
		}
	}
}

// drawSprite 以中心点和旋转角度绘制当前帧，图像缺失时绘制占位图
func (s *GameScene) drawSprite(screen *ebiten.Image, v session.EntityView) {
	if s.resourceManager == nil {
		return
	}
	w, h := v.Width, v.Height
	if w <= 0 || h <= 0 {
		w = s.config.Animation.PlaceholderSize
		h = s.config.Animation.PlaceholderSize
	}
	img, _ := s.resourceManager.ImageOrPlaceholder(v.FrameID, w, h)
	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	if iw == 0 || ih == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(w/iw, h/ih)
	// 实体角度为逆时针，GeoM 的正角度为顺时针
	op.GeoM.Rotate(-v.Rotation * math.Pi / 180)
	op.GeoM.Translate(v.X, v.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// drawHUD 绘制分数、生命、关卡进度和输入框
func (s *GameScene) drawHUD(screen *ebiten.Image, snap session.Snapshot) {
	if s.hudFont == nil {
		return
	}
	hud := snap.HUD
	switch snap.Overlay.State {
	case session.StateMenu, session.StateLaunchAnimation:
		return
	}

	s.drawText(screen, fmt.Sprintf("SCORE %d", hud.Score), s.hudFont, 16, 12, hudColor)
	s.drawText(screen, "LIVES "+livesGauge(hud.Lives, hud.MaxLives), s.hudFont, 16, 40, hudColor)

	stage := fmt.Sprintf("STAGE %d/%d  %d/%d", hud.Stage, hud.StageCount, hud.Cleared, hud.Quota)
	width, _ := text.Measure(stage, s.hudFont, 0)
	s.drawText(screen, stage, s.hudFont, s.config.Screen.Width-width-16, 12, hudColor)

	input := "> " + hud.Input
	if hud.CursorVisible {
		input += "_"
	}
	s.drawText(screen, input, s.hudFont, 16, s.config.BoundaryY()+16, accentColor)
}

// livesGauge 用 # 和 . 表示剩余和已失去的生命
func livesGauge(lives, maxLives int) string {
	if lives < 0 {
		lives = 0
	}
	if maxLives < lives {
		maxLives = lives
	}
	return strings.Repeat("#", lives) + strings.Repeat(".", maxLives-lives)
}

// drawOverlay 绘制当前状态的覆盖层
func (s *GameScene) drawOverlay(screen *ebiten.Image, snap session.Snapshot) {
	if s.titleFont == nil {
		return
	}
	cx := s.config.Screen.Width / 2
	cy := s.config.Screen.Height / 2

	switch snap.Overlay.State {
	case session.StateMenu:
		s.drawCenteredText(screen, "ARITHMETRON", s.titleFont, cx, cy, accentColor)
		s.drawCenteredText(screen, "ENTER to launch   S stats   ESC quit", s.hudFont, cx, cy+60, hudColor)
		if s.showStats {
			s.drawStatsPanel(screen, cx, cy+180)
		}
	case session.StatePaused:
		s.dim(screen)
		s.drawCenteredText(screen, "PAUSED", s.titleFont, cx, cy, hudColor)
		s.drawCenteredText(screen, "P to resume   R menu", s.hudFont, cx, cy+60, hudColor)
	case session.StateStageCleared:
		s.drawCenteredText(screen, fmt.Sprintf("STAGE %d CLEARED", snap.HUD.Stage), s.titleFont, cx, cy, accentColor)
		if snap.Overlay.CanAdvance {
			s.drawCenteredText(screen, "ENTER for next stage", s.hudFont, cx, cy+60, hudColor)
		}
	case session.StateGameCleared:
		s.dim(screen)
		s.drawCenteredText(screen, "ALL STAGES CLEARED", s.titleFont, cx, cy, accentColor)
		s.drawCenteredText(screen, fmt.Sprintf("FINAL SCORE %d   R menu", snap.Overlay.FinalScore), s.hudFont, cx, cy+60, hudColor)
	case session.StateGameOver:
		s.dim(screen)
		s.drawCenteredText(screen, "GAME OVER", s.titleFont, cx, cy, boundaryColor)
		s.drawCenteredText(screen, fmt.Sprintf("FINAL SCORE %d   R menu", snap.Overlay.FinalScore), s.hudFont, cx, cy+60, hudColor)
	}
}

// drawStatsPanel 菜单中的统计弹窗
func (s *GameScene) drawStatsPanel(screen *ebiten.Image, cx, cy float64) {
	const w, h = 320, 110
	vector.DrawFilledRect(screen, float32(cx-w/2), float32(cy-h/2), w, h, panelColor, false)
	vector.StrokeRect(screen, float32(cx-w/2), float32(cy-h/2), w, h, 2, accentColor, false)

	var summary stats.Summary
	if s.stats != nil {
		summary = s.stats.Snapshot()
	}
	s.drawCenteredText(screen, fmt.Sprintf("Highest level  %d", summary.HighestStage), s.hudFont, cx, cy-18, hudColor)
	s.drawCenteredText(screen, fmt.Sprintf("Annihilated    %d", summary.Annihilated), s.hudFont, cx, cy+18, hudColor)
}

func (s *GameScene) dim(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(s.config.Screen.Width), float32(s.config.Screen.Height), dimColor, false)
}

// drawText 左上角对齐绘制文字
func (s *GameScene) drawText(screen *ebiten.Image, str string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawCenteredText 以 (x, y) 为中心绘制文字
func (s *GameScene) drawCenteredText(screen *ebiten.Image, str string, face text.Face, x, y float64, clr color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}
