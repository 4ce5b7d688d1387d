package scenes

import (
	"math/rand"

	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/game"
	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/decker502/arithmetron/pkg/session"
	"github.com/decker502/arithmetron/pkg/stats"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
)

const (
	hudFontID  = "FONT_HUD"
	hudSize    = 22
	labelSize  = 18
	titleSize  = 48
	starCount  = 90
	starSeed   = 7
	maxStarVel = 1.5
)

// volumeControl 音量调节能力，由 *game.AudioManager 实现
type volumeControl interface {
	AdjustVolume(delta float64)
	PlaySound(soundID string) bool
}

// statsSource 统计弹窗的数据来源，由 *stats.Tracker 实现
type statsSource interface {
	Snapshot() stats.Summary
}

// star 背景星空中的一颗星
type star struct {
	X, Y  float64
	Speed float64 // 像素/帧
	Size  float32
}

// GameScene 唯一的游戏场景
// 把键盘映射为会话意图，按帧推进会话，并绘制会话快照
type GameScene struct {
	resourceManager *game.ResourceManager
	audio           volumeControl // 可为 nil
	stats           statsSource   // 可为 nil
	session         *session.Session
	config          *config.GameConfig

	hudFont   text.Face
	labelFont text.Face
	titleFont text.Face

	stars     []star
	showStats bool
	keys      []ebiten.Key

	logger zerolog.Logger
}

// NewGameScene 创建游戏场景
//
// 参数:
//   - rm: 资源管理器（图像、字体）
//   - audio: 音量调节与按键音效，可为 nil
//   - stats: 统计弹窗数据，可为 nil
//   - sess: 已创建好的会话，其 Presenter 通常是 NewAudioPresenter
//   - cfg: 游戏配置
func NewGameScene(rm *game.ResourceManager, audio volumeControl, stats statsSource, sess *session.Session, cfg *config.GameConfig) *GameScene {
	s := &GameScene{
		resourceManager: rm,
		audio:           audio,
		stats:           stats,
		session:         sess,
		config:          cfg,
		logger:          logging.For("GameScene"),
	}
	if rm != nil {
		s.hudFont = rm.FontOrDefault(hudFontID, hudSize)
		s.labelFont = rm.FontOrDefault(hudFontID, labelSize)
		s.titleFont = rm.FontOrDefault(hudFontID, titleSize)
	}
	s.initStars()
	return s
}

// initStars 生成固定种子的星空
func (s *GameScene) initStars() {
	rng := rand.New(rand.NewSource(starSeed))
	s.stars = make([]star, starCount)
	for i := range s.stars {
		s.stars[i] = star{
			X:     rng.Float64() * s.config.Screen.Width,
			Y:     rng.Float64() * s.config.Screen.Height,
			Speed: 0.2 + rng.Float64()*maxStarVel,
			Size:  float32(1 + rng.Intn(2)),
		}
	}
}

// Update 处理本帧按键并推进会话
func (s *GameScene) Update(deltaTime float64) {
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, key := range s.keys {
		if action, ok := MapKey(key, s.session.State()); ok {
			s.handleAction(action)
		}
	}

	s.session.Advance(deltaTime)
	s.updateStars(deltaTime)
}

// handleAction 执行一次按键动作
func (s *GameScene) handleAction(action Action) {
	switch action.Kind {
	case ActionIntent:
		if !s.session.HandleIntent(action.Intent) {
			return
		}
		s.logger.Debug().Stringer("intent", action.Intent.Kind).Stringer("state", s.session.State()).Msg("intent accepted")
		if s.session.State() != session.StateMenu {
			s.showStats = false
		}
	case ActionToggleStats:
		if s.session.State() != session.StateMenu {
			return
		}
		s.showStats = !s.showStats
		if s.audio != nil {
			s.audio.PlaySound(game.SoundButtonHover)
		}
	case ActionVolumeUp:
		if s.audio != nil {
			s.audio.AdjustVolume(game.VolumeStep)
		}
	case ActionVolumeDown:
		if s.audio != nil {
			s.audio.AdjustVolume(-game.VolumeStep)
		}
	}
}

// updateStars 星空缓慢下移，暂停时静止
func (s *GameScene) updateStars(deltaTime float64) {
	if s.session.State() == session.StatePaused {
		return
	}
	scale := deltaTime / s.config.FrameDurationMs()
	for i := range s.stars {
		st := &s.stars[i]
		st.Y += st.Speed * scale
		if st.Y > s.config.Screen.Height {
			st.Y -= s.config.Screen.Height
		}
	}
}

// QuitRequested 实现 game.Quitter
func (s *GameScene) QuitRequested() bool {
	return s.session.QuitRequested()
}

// StatsVisible 菜单统计弹窗是否显示
func (s *GameScene) StatsVisible() bool {
	return s.showStats
}

// Draw 绘制当前会话快照
func (s *GameScene) Draw(screen *ebiten.Image) {
	snap := s.session.Snapshot()

	s.drawBackground(screen)
	if snap.Overlay.State != session.StateMenu && snap.Overlay.State != session.StateLaunchAnimation {
		s.drawBoundary(screen)
	}
	s.drawEntities(screen, snap.Entities)
	s.drawHUD(screen, snap)
	s.drawOverlay(screen, snap)
}
