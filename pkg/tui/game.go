package tui

import (
	"context"
	"time"

	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/decker502/arithmetron/pkg/session"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

// TickInterval 主循环帧间隔（约 60 FPS）
const TickInterval = 16 * time.Millisecond

// maxFrameMs 单帧最大推进时长
const maxFrameMs = 100.0

// Game 终端版主循环
// 事件由 PollEvent goroutine 送入通道，模拟和绘制只在主循环中进行
type Game struct {
	screen   tcell.Screen
	session  *session.Session
	renderer *Renderer
	beeper   *Beeper // 可为 nil

	logger zerolog.Logger
}

// NewGame 创建终端版主循环
func NewGame(screen tcell.Screen, sess *session.Session, renderer *Renderer, beeper *Beeper) *Game {
	g := &Game{
		screen:   screen,
		session:  sess,
		renderer: renderer,
		beeper:   beeper,
		logger:   logging.For("TUI"),
	}
	if beeper != nil {
		renderer.SetMuted(beeper.Muted())
	}
	return g
}

// HandleEvent 处理一个终端事件
func (g *Game) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action, ok := MapKey(ev.Key(), ev.Rune(), g.session.State())
		if ok {
			g.handleAction(action)
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

func (g *Game) handleAction(action Action) {
	switch action.Kind {
	case ActionIntent:
		if !g.session.HandleIntent(action.Intent) {
			return
		}
		g.logger.Debug().Stringer("intent", action.Intent.Kind).Stringer("state", g.session.State()).Msg("intent accepted")
		if g.session.State() != session.StateMenu {
			g.renderer.SetShowStats(false)
		}
	case ActionToggleStats:
		if g.session.State() == session.StateMenu {
			g.renderer.SetShowStats(!g.renderer.ShowStats())
			if g.beeper != nil {
				g.beeper.PlayCue(session.CueButtonHover)
			}
		}
	case ActionToggleMute:
		if g.beeper != nil {
			g.renderer.SetMuted(g.beeper.ToggleMute())
		}
	}
}

// Step 推进一帧并绘制
func (g *Game) Step(dtMs float64) {
	g.session.Advance(dtMs)
	g.session.RenderTo(g.renderer)
}

// Run 运行主循环，直到会话请求退出或 ctx 取消
func (g *Game) Run(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				// 屏幕已关闭
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	last := time.Now()
	g.session.RenderTo(g.renderer)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			g.HandleEvent(ev)
		case now := <-ticker.C:
			dt := float64(now.Sub(last)) / float64(time.Millisecond)
			if dt > maxFrameMs {
				dt = maxFrameMs
			}
			last = now
			g.Step(dt)
		}
		if g.session.QuitRequested() {
			return
		}
	}
}
