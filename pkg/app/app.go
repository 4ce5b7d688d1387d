// Package app 提供游戏应用的核心包装器
//
// 该包把 main 中装配好的会话和资源组合成一个 ebiten.Game，
// 负责墙钟计时、全屏切换和退出。
package app

import (
	"errors"
	"image/color"
	"math/rand"
	"time"

	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/game"
	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/decker502/arithmetron/pkg/scenes"
	"github.com/decker502/arithmetron/pkg/session"
	"github.com/decker502/arithmetron/pkg/stats"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

// SampleRate 音频采样率
const SampleRate = 48000

// MaxFrameMs 单帧最大时长，窗口拖动或断点恢复后避免一次推进过多
const MaxFrameMs = 100.0

// ErrNilGameConfig 缺少游戏配置
var ErrNilGameConfig = errors.New("app: game config is nil")

// Config 定义应用启动配置
type Config struct {
	Game     *config.GameConfig
	Stages   config.StageTable
	Seed     int64                 // 0 表示使用当前时间
	Settings *game.SettingsManager // 可为 nil，使用默认音量
	Stats    *stats.Tracker        // 可为 nil
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	gameConfig   *config.GameConfig
	settings     *game.SettingsManager

	clock    func() time.Time
	lastTick time.Time

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数

	logger zerolog.Logger
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if cfg.Game == nil {
		return nil, ErrNilGameConfig
	}
	logger := logging.For("App")

	// 初始化音频上下文
	audioContext := audio.NewContext(SampleRate)

	resourceManager := game.NewResourceManager(audioContext)
	if err := resourceManager.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
		// 资源清单缺失时仍可用占位图和静音运行
		logger.Warn().Err(err).Msg("resource config unavailable, using placeholders")
	}

	audioManager := game.NewAudioManager(resourceManager, cfg.Settings)
	audioManager.Preload(game.SoundLaser, game.SoundExplosion, game.SoundScore)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info().Int64("seed", seed).Int("stages", cfg.Stages.Len()).Msg("starting session")

	var reporter session.StatsReporter
	if cfg.Stats != nil {
		reporter = cfg.Stats
	}
	sess, err := session.New(cfg.Game, cfg.Stages, rand.New(rand.NewSource(seed)), scenes.NewAudioPresenter(audioManager), reporter)
	if err != nil {
		return nil, err
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(newScene(resourceManager, audioManager, cfg.Stats, sess, cfg.Game))

	return &App{
		sceneManager: sceneManager,
		gameConfig:   cfg.Game,
		settings:     cfg.Settings,
		clock:        time.Now,
		logger:       logger,
	}, nil
}

// newScene 避免把 nil 指针装进接口
func newScene(rm *game.ResourceManager, am *game.AudioManager, tracker *stats.Tracker, sess *session.Session, cfg *config.GameConfig) *scenes.GameScene {
	if tracker == nil {
		return scenes.NewGameScene(rm, am, nil, sess, cfg)
	}
	return scenes.NewGameScene(rm, am, tracker, sess, cfg)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.windowSize()
			ebiten.SetWindowSize(w, h)
			a.logger.Debug().Int("width", w).Int("height", h).Msg("delayed SetWindowSize")
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(a.frameDelta())
	if a.sceneManager.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

// frameDelta 返回距上一帧的毫秒数，首帧使用标称帧时长
func (a *App) frameDelta() float64 {
	now := a.clock()
	delta := a.gameConfig.FrameDurationMs()
	if !a.lastTick.IsZero() {
		delta = clampFrameMs(float64(now.Sub(a.lastTick)) / float64(time.Millisecond))
	}
	a.lastTick = now
	return delta
}

// clampFrameMs 限制单帧时长在 [0, MaxFrameMs]
func clampFrameMs(ms float64) float64 {
	if ms < 0 {
		return 0
	}
	if ms > MaxFrameMs {
		return MaxFrameMs
	}
	return ms
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.logger.Debug().Msg("exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	if a.settings != nil {
		a.settings.SetFullscreen(fullscreen)
		if err := a.settings.Save(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to save fullscreen setting")
		}
	}
}

func (a *App) windowSize() (int, int) {
	return int(a.gameConfig.Screen.Width), int(a.gameConfig.Screen.Height)
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.windowSize()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}
