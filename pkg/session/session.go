// Package session 实现游戏会话状态机和逐帧模拟
//
// Session 是唯一修改游戏状态的地方：表现层把按键映射为 Intent 交给
// HandleIntent，每帧调用 Advance 推进模拟，再通过 Snapshot 读取只读视图。
// 所有方法都必须在同一个 goroutine（帧循环）中调用。
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/ecs"
	"github.com/decker502/arithmetron/pkg/entities"
	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/decker502/arithmetron/pkg/problem"
	"github.com/decker502/arithmetron/pkg/systems"
	"github.com/rs/zerolog"
)

// ErrNilConfig 未提供游戏配置
var ErrNilConfig = errors.New("game config cannot be nil")

// Session 游戏会话
type Session struct {
	config    *config.GameConfig
	stages    config.StageTable
	presenter Presenter
	stats     StatsReporter
	logger    zerolog.Logger

	em        *ecs.EntityManager
	animation *systems.AnimationSystem
	movement  *systems.MovementSystem
	spawner   *systems.SpawnSystem
	combat    *systems.CombatSystem
	input     *systems.TextInputSystem

	state      State
	score      int
	lives      int
	stageIndex int
	cleared    int

	player   ecs.EntityID // 游戏中的飞船，菜单和起飞动画中为 0
	menuShip ecs.EntityID // 菜单/起飞动画中的飞船

	stageClearTimer components.TimerComponent
	quitRequested   bool
}

// New 创建会话，初始状态为 Menu
//
// 参数:
//   - cfg: 游戏配置
//   - stages: 关卡表，不能为空
//   - rng: 随机源（生成位置和题目），为 nil 时使用固定种子 1
//   - presenter: 音频输出，可以为 nil
//   - stats: 统计上报，可以为 nil
//
// 返回:
//   - *Session: 会话实例
//   - error: 配置无效时返回错误
func New(cfg *config.GameConfig, stages config.StageTable, rng *rand.Rand, presenter Presenter, stats StatsReporter) (*Session, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if stages.Len() == 0 {
		return nil, config.ErrEmptyStageTable
	}
	gen, err := problem.NewGenerator(cfg.Problems)
	if err != nil {
		return nil, fmt.Errorf("failed to create problem generator: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if presenter == nil {
		presenter = nopPresenter{}
	}
	if stats == nil {
		stats = nopStats{}
	}

	em := ecs.NewEntityManager()
	s := &Session{
		config:    cfg,
		stages:    stages,
		presenter: presenter,
		stats:     stats,
		logger:    logging.For("Session"),
		em:        em,
		animation: systems.NewAnimationSystem(em),
		movement:  systems.NewMovementSystem(em, cfg),
		spawner:   systems.NewSpawnSystem(em, cfg, gen, rng),
		combat:    systems.NewCombatSystem(em, cfg),
		input:     systems.NewTextInputSystem(cfg.Rules.MaxInputLength, cfg.Rules.CursorBlinkMs),
		stageClearTimer: components.TimerComponent{
			Name:       "stage_clear_debounce",
			TargetTime: cfg.Rules.StageClearDebounceMs,
		},
	}
	s.restartToMenu()
	return s, nil
}

// State 返回当前状态
func (s *Session) State() State { return s.state }

// Score 返回当前分数
func (s *Session) Score() int { return s.score }

// Lives 返回剩余生命
func (s *Session) Lives() int { return s.lives }

// StageIndex 返回当前关卡下标；全部通关后等于关卡数
func (s *Session) StageIndex() int { return s.stageIndex }

// StageNumber 返回 1-based 关卡号，不超过关卡数
func (s *Session) StageNumber() int {
	if s.stageIndex >= s.stages.Len() {
		return s.stages.Len()
	}
	return s.stageIndex + 1
}

// Cleared 返回本关已击毁的敌人数量
func (s *Session) Cleared() int { return s.cleared }

// Spawned 返回本关已生成（且未越线）的敌人数量
func (s *Session) Spawned() int { return s.spawner.Spawned() }

// QuitRequested 返回是否请求退出
func (s *Session) QuitRequested() bool { return s.quitRequested }

// HandleIntent 应用一个意图；当前状态不接受该意图时忽略
//
// 返回:
//   - bool: 意图是否被接受
func (s *Session) HandleIntent(in Intent) bool {
	switch in.Kind {
	case IntentStartGame:
		if s.state != StateMenu {
			return false
		}
		s.setState(StateLaunchAnimation)
		return true

	case IntentTogglePause:
		switch s.state {
		case StatePlay:
			s.setState(StatePaused)
			return true
		case StatePaused:
			s.setState(StatePlay)
			return true
		}
		return false

	case IntentSubmitAnswer:
		if s.state != StatePlay {
			return false
		}
		typed := s.input.Take()
		text := in.Text
		if text == "" {
			text = typed
		}
		return s.submit(text)

	case IntentInputDigit:
		if s.state != StatePlay {
			return false
		}
		return s.input.InsertDigit(in.Digit)

	case IntentInputBackspace:
		if s.state != StatePlay {
			return false
		}
		s.input.DeleteCharBefore()
		return true

	case IntentAdvanceStage:
		if !s.canAdvance() {
			return false
		}
		s.advanceStage()
		return true

	case IntentRestartToMenu:
		s.restartToMenu()
		return true

	case IntentQuit:
		s.quitRequested = true
		s.logger.Info().Msg("quit requested")
		return true
	}
	return false
}

// StartGame 开始游戏（仅 Menu）
func (s *Session) StartGame() bool { return s.HandleIntent(Intent{Kind: IntentStartGame}) }

// TogglePause 切换暂停（仅 Play/Paused）
func (s *Session) TogglePause() bool { return s.HandleIntent(Intent{Kind: IntentTogglePause}) }

// SubmitAnswer 提交答案（仅 Play）
func (s *Session) SubmitAnswer(text string) bool {
	return s.HandleIntent(Intent{Kind: IntentSubmitAnswer, Text: text})
}

// InputDigit 输入一个数字（仅 Play）
func (s *Session) InputDigit(r rune) bool {
	return s.HandleIntent(Intent{Kind: IntentInputDigit, Digit: r})
}

// InputBackspace 删除一个字符（仅 Play）
func (s *Session) InputBackspace() bool { return s.HandleIntent(Intent{Kind: IntentInputBackspace}) }

// AdvanceStage 进入下一关（仅 StageCleared 且防抖结束）
func (s *Session) AdvanceStage() bool { return s.HandleIntent(Intent{Kind: IntentAdvanceStage}) }

// RestartToMenu 回到菜单（任何状态）
func (s *Session) RestartToMenu() bool { return s.HandleIntent(Intent{Kind: IntentRestartToMenu}) }

// Quit 请求退出
func (s *Session) Quit() bool { return s.HandleIntent(Intent{Kind: IntentQuit}) }

// Advance 推进一帧模拟
//
// 参数:
//   - dtMs: 自上一帧以来经过的时间（毫秒），负值按 0 处理
func (s *Session) Advance(dtMs float64) {
	if dtMs < 0 {
		dtMs = 0
	}

	switch s.state {
	case StateMenu:
		s.animation.Update(dtMs)
		s.em.RemoveMarkedEntities()
	case StateLaunchAnimation:
		s.launchStep(dtMs)
	case StatePlay:
		s.playStep(dtMs)
	case StateStageCleared:
		s.stageClearTimer.Tick(dtMs)
		s.cosmeticStep(dtMs)
	case StateGameCleared:
		s.cosmeticStep(dtMs)
	case StatePaused, StateGameOver:
		// 冻结
	}
}

// launchStep 菜单飞船上升，完全离开屏幕顶部后开始游戏
func (s *Session) launchStep(dtMs float64) {
	s.animation.Update(dtMs)

	pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, s.menuShip)
	if !ok {
		s.startPlay()
		return
	}
	pos.Y -= s.config.Layout.LaunchSpeed * dtMs / s.config.FrameDurationMs()

	bottom := pos.Y
	if col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, s.menuShip); ok {
		_, _, _, bottom = col.Bounds(pos.X, pos.Y)
	}
	if bottom <= 0 {
		s.startPlay()
	}
}

// playStep 一帧完整模拟
// 顺序：动画与移动 → 生成 → 命中 → 过关检查 → 底线检测 → 生命检查 → 清理
func (s *Session) playStep(dtMs float64) {
	s.input.Update(dtMs)
	s.animation.Update(dtMs)
	s.movement.Update(dtMs)

	s.spawner.Update(dtMs, s.score)

	for _, hit := range s.combat.ResolveHits() {
		s.score += s.config.Rules.PointsPerHit
		s.cleared++
		s.presenter.PlayCue(CueExplosion)
		s.presenter.PlayCue(CueScore)
		s.stats.ReportProgress(s.stageIndex+1, 1)
		s.logger.Debug().Uint64("enemy", uint64(hit.Enemy)).Int("score", s.score).Int("cleared", s.cleared).Msg("enemy destroyed")
	}

	if s.checkStageCompletion() {
		s.em.RemoveMarkedEntities()
		return
	}

	if breached := s.combat.SweepBoundary(); breached > 0 {
		for i := 0; i < breached; i++ {
			if s.lives > 0 {
				s.lives--
			}
			s.spawner.Release()
		}
		s.input.Clear()
		s.logger.Debug().Int("breached", breached).Int("lives", s.lives).Msg("boundary breached")
		s.checkLifeLoss()
	}

	s.em.RemoveMarkedEntities()
}

// cosmeticStep 覆盖层下继续播放爆炸和飞行中的激光，不生成、不判定
func (s *Session) cosmeticStep(dtMs float64) {
	s.animation.Update(dtMs)
	s.movement.Update(dtMs)
	s.em.RemoveMarkedEntities()
}

// checkStageCompletion 本关击毁数达到配额时过关
// 这是进入 StageCleared/GameCleared 的唯一路径
func (s *Session) checkStageCompletion() bool {
	stage, ok := s.stages.Stage(s.stageIndex)
	if !ok || s.cleared < stage.EnemiesToClear {
		return false
	}

	s.spawner.Disarm()
	s.presenter.PlayCue(CueStageClear)
	s.stats.ReportProgress(s.stageIndex+1, 0)

	if s.stages.IsFinal(s.stageIndex) {
		s.stageIndex = s.stages.Len()
		s.setState(StateGameCleared)
		return true
	}

	s.stageClearTimer.Reset()
	s.setState(StateStageCleared)
	return true
}

// checkLifeLoss 生命归零时结束游戏
// 这是进入 GameOver 的唯一路径
func (s *Session) checkLifeLoss() {
	if s.lives > 0 {
		return
	}
	s.spawner.Disarm()
	s.presenter.PlayCue(CueGameOver)
	s.presenter.StopMusic()
	s.setState(StateGameOver)
}

// canAdvance StageCleared 且防抖时间已过
func (s *Session) canAdvance() bool {
	return s.state == StateStageCleared && s.stageClearTimer.IsReady
}

// advanceStage 进入下一关并重新武装生成器
func (s *Session) advanceStage() {
	s.stageIndex++
	s.cleared = 0
	s.input.Clear()
	stage, _ := s.stages.Stage(s.stageIndex)
	s.spawner.Arm(stage)
	s.setState(StatePlay)
}

// submit 解析答案并向匹配的敌人发射激光
// 非数字或没有匹配的提交被忽略
func (s *Session) submit(text string) bool {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return false
	}
	target, ok := s.combat.FindTarget(value)
	if !ok {
		return false
	}
	if _, err := s.combat.Fire(s.player, target); err != nil {
		s.logger.Warn().Err(err).Msg("failed to fire")
		return false
	}
	s.presenter.PlayCue(CueLaser)
	return true
}

// resetCounters 清空实体并重置所有会话计数
func (s *Session) resetCounters() {
	s.em.Clear()
	s.score = 0
	s.lives = s.config.Rules.MaxLives
	s.stageIndex = 0
	s.cleared = 0
	s.player = 0
	s.menuShip = 0
	s.spawner.Disarm()
	s.input.Clear()
	s.stageClearTimer.Reset()
}

// startPlay 起飞动画结束：重置计数，创建玩家飞船，武装第一关
func (s *Session) startPlay() {
	s.resetCounters()

	x, y := s.config.PlayerPosition()
	player, err := entities.NewPlayer(s.em, s.config, x, y)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create player")
	}
	s.player = player

	stage, _ := s.stages.Stage(0)
	s.spawner.Arm(stage)

	s.presenter.StopMusic()
	s.presenter.PlayMusic(TrackGame)
	s.setState(StatePlay)
}

// restartToMenu 完全重置并回到菜单
func (s *Session) restartToMenu() {
	s.resetCounters()

	x, y := s.config.MenuShipPosition()
	ship, err := entities.NewPlayer(s.em, s.config, x, y)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create menu ship")
	}
	s.menuShip = ship

	s.presenter.PlayMusic(TrackMenu)
	s.setState(StateMenu)
}

func (s *Session) setState(next State) {
	if s.state != next {
		s.logger.Info().Stringer("from", s.state).Stringer("to", next).Int("stage", s.StageNumber()).Int("score", s.score).Msg("state changed")
	}
	s.state = next
}
