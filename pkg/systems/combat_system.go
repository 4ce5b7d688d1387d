package systems

import (
	"fmt"

	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/ecs"
	"github.com/decker502/arithmetron/pkg/entities"
	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/rs/zerolog"
)

// HitEvent 激光命中敌人
type HitEvent struct {
	Enemy      ecs.EntityID
	Projectile ecs.EntityID
	X, Y       float64 // 爆炸位置（敌人中心）
}

// CombatSystem 负责瞄准、发射、命中判定和底线检测
type CombatSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	logger        zerolog.Logger
}

// NewCombatSystem 创建战斗系统
//
// 参数:
//   - em: 实体管理器，用于查询和操作实体组件
//   - cfg: 游戏配置（底线位置、激光参数）
//
// 返回:
//   - *CombatSystem: 战斗系统实例
func NewCombatSystem(em *ecs.EntityManager, cfg *config.GameConfig) *CombatSystem {
	return &CombatSystem{
		entityManager: em,
		config:        cfg,
		logger:        logging.For("Combat"),
	}
}

// FindTarget 查找答案匹配的目标敌人
// 多个候选时选最靠近底线的（中心 y 最大），并列时选 ID 最小的
//
// 返回:
//   - ecs.EntityID: 目标敌人ID
//   - bool: 是否找到
func (s *CombatSystem) FindTarget(answer int) (ecs.EntityID, bool) {
	var (
		best  ecs.EntityID
		bestY float64
		found bool
	)
	for _, id := range s.liveEnemies() {
		prob, _ := ecs.GetComponent[*components.ProblemComponent](s.entityManager, id)
		if prob.Answer != answer {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		// 实体按 ID 升序遍历，严格大于保证并列时保留较小的 ID
		if !found || pos.Y > bestY {
			best, bestY, found = id, pos.Y, true
		}
	}
	return best, found
}

// liveEnemies 返回未被标记删除的敌人，按 ID 升序
func (s *CombatSystem) liveEnemies() []ecs.EntityID {
	enemies := ecs.GetEntitiesWith3[*components.ProblemComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager)
	live := enemies[:0]
	for _, id := range enemies {
		if s.entityManager.IsAlive(id) {
			live = append(live, id)
		}
	}
	return live
}

// Fire 玩家飞船转向目标并发射激光
//
// 参数:
//   - player: 玩家飞船实体ID
//   - target: 目标敌人实体ID
//
// 返回:
//   - ecs.EntityID: 激光实体ID
//   - error: 玩家或目标缺少位置组件时返回错误
func (s *CombatSystem) Fire(player, target ecs.EntityID) (ecs.EntityID, error) {
	playerPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, player)
	if !ok {
		return 0, fmt.Errorf("player %d has no position", player)
	}
	targetPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, target)
	if !ok {
		return 0, fmt.Errorf("target %d has no position", target)
	}

	heading := components.HeadingDegrees(playerPos.X, playerPos.Y, targetPos.X, targetPos.Y)
	if rot, ok := ecs.GetComponent[*components.RotationComponent](s.entityManager, player); ok {
		rot.Degrees = heading
		refreshExtent(s.entityManager, player)
	}

	id, err := entities.NewProjectile(s.entityManager, s.config, playerPos.X, playerPos.Y, targetPos.X, targetPos.Y, target)
	if err != nil {
		return 0, fmt.Errorf("failed to create projectile: %w", err)
	}
	s.logger.Debug().Uint64("projectile", uint64(id)).Uint64("target", uint64(target)).Float64("heading", heading).Msg("fired")
	return id, nil
}

// ResolveHits 检测激光与敌人的碰撞
// 每束激光按 ID 顺序与所有存活敌人比较，取第一个重叠的敌人；
// 命中时激光和敌人都被标记删除，并在敌人中心生成爆炸。
// 瞄准的敌人挡在后面时，路径上先碰到的敌人被击毁
func (s *CombatSystem) ResolveHits() []HitEvent {
	var hits []HitEvent

	projectiles := ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager)
	for _, id := range projectiles {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		projPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		projCol, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)

		for _, enemy := range s.liveEnemies() {
			enemyPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, enemy)
			enemyCol, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, enemy)
			if !checkAABBCollision(projPos, projCol, enemyPos, enemyCol) {
				continue
			}

			s.entityManager.DestroyEntity(id)
			s.entityManager.DestroyEntity(enemy)
			if _, err := entities.NewExplosion(s.entityManager, s.config, enemyPos.X, enemyPos.Y); err != nil {
				s.logger.Warn().Err(err).Msg("failed to create explosion")
			}

			hits = append(hits, HitEvent{
				Enemy:      enemy,
				Projectile: id,
				X:          enemyPos.X,
				Y:          enemyPos.Y,
			})
			break
		}
	}
	return hits
}

// SweepBoundary 删除底边到达底线的敌人
//
// 返回:
//   - int: 本次越过底线的敌人数量
func (s *CombatSystem) SweepBoundary() int {
	boundary := s.config.BoundaryY()
	breached := 0

	enemies := ecs.GetEntitiesWith3[*components.ProblemComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager)
	for _, id := range enemies {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
		_, _, _, bottom := col.Bounds(pos.X, pos.Y)
		if bottom >= boundary {
			s.entityManager.DestroyEntity(id)
			breached++
			s.logger.Debug().Uint64("entity", uint64(id)).Msg("enemy crossed boundary")
		}
	}
	return breached
}
