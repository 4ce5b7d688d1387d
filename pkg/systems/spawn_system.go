package systems

import (
	"math/rand"

	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/ecs"
	"github.com/decker502/arithmetron/pkg/entities"
	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/decker502/arithmetron/pkg/problem"
	"github.com/rs/zerolog"
)

// SpawnSystem 按关卡节奏生成敌人
//
// 计时器只在武装状态下累计时间；计时到达间隔且已生成数量低于配额时
// 生成一个敌人并将计时器归零。越过底线的敌人通过 Release 归还名额，
// 使该关仍能凑满配额。
type SpawnSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	generator     *problem.Generator
	rng           *rand.Rand
	logger        zerolog.Logger

	timer   components.TimerComponent
	stage   config.Stage
	armed   bool
	spawned int
}

// NewSpawnSystem 创建敌人生成系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（生成区域）
//   - gen: 题目生成器
//   - rng: 随机源，决定生成位置和题目
//
// 返回:
//   - *SpawnSystem: 初始为未武装状态
func NewSpawnSystem(em *ecs.EntityManager, cfg *config.GameConfig, gen *problem.Generator, rng *rand.Rand) *SpawnSystem {
	return &SpawnSystem{
		entityManager: em,
		config:        cfg,
		generator:     gen,
		rng:           rng,
		logger:        logging.For("Spawn"),
		timer:         components.TimerComponent{Name: "enemy_spawn"},
	}
}

// Arm 为指定关卡武装生成器，已生成计数和计时器归零
func (s *SpawnSystem) Arm(stage config.Stage) {
	s.stage = stage
	s.spawned = 0
	s.armed = true
	s.timer.TargetTime = stage.SpawnIntervalMs
	s.timer.Reset()
	s.logger.Debug().
		Float64("intervalMs", stage.SpawnIntervalMs).
		Float64("speed", stage.EnemySpeed).
		Int("quota", stage.EnemiesToClear).
		Msg("spawner armed")
}

// Disarm 停止生成
func (s *SpawnSystem) Disarm() {
	s.armed = false
	s.spawned = 0
	s.timer.Reset()
}

// Armed 返回是否处于武装状态
func (s *SpawnSystem) Armed() bool {
	return s.armed
}

// Spawned 返回本关已生成（且未归还）的敌人数量
func (s *SpawnSystem) Spawned() int {
	return s.spawned
}

// Release 归还一个生成名额（敌人越过底线时调用）
func (s *SpawnSystem) Release() {
	if s.spawned > 0 {
		s.spawned--
	}
}

// Update 推进生成计时器，必要时生成一个敌人
//
// 参数:
//   - deltaTime: 自上一帧以来经过的时间（毫秒）
//   - score: 当前分数，决定题目难度
//
// 返回:
//   - ecs.EntityID: 新敌人的ID
//   - bool: 本次是否生成了敌人
func (s *SpawnSystem) Update(deltaTime float64, score int) (ecs.EntityID, bool) {
	if !s.armed {
		return 0, false
	}

	s.timer.Tick(deltaTime)
	if !s.timer.IsReady || s.spawned >= s.stage.EnemiesToClear {
		return 0, false
	}

	left, right := s.config.SpawnRangeX()
	x := left + float64(s.rng.Intn(int(right-left)+1))
	p := s.generator.Generate(score, s.rng)

	id, err := entities.NewEnemy(s.entityManager, s.config, x, s.config.Layout.SpawnY, s.stage.EnemySpeed, p)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create enemy")
		return 0, false
	}

	s.spawned++
	s.timer.Reset()
	s.logger.Debug().Uint64("entity", uint64(id)).Str("problem", p.Text).Float64("x", x).Msg("enemy spawned")
	return id, true
}
