package systems

import (
	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/ecs"
)

// MovementSystem 按速度移动实体，并回收飞出屏幕的激光
// 速度单位是像素/帧，按 deltaTime 与名义帧时长的比例缩放
type MovementSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, cfg *config.GameConfig) *MovementSystem {
	return &MovementSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Update 移动所有拥有速度的实体
//
// 参数:
//   - deltaTime: 自上一帧以来经过的时间（毫秒）
func (s *MovementSystem) Update(deltaTime float64) {
	scale := deltaTime / s.config.FrameDurationMs()
	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](s.entityManager)

	for _, id := range entities {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		pos.X += vel.VX * scale
		pos.Y += vel.VY * scale

		if s.isProjectile(id) && s.isOffScreen(id, pos) {
			s.entityManager.DestroyEntity(id)
		}
	}
}

func (s *MovementSystem) isProjectile(id ecs.EntityID) bool {
	behavior, ok := ecs.GetComponent[*components.BehaviorComponent](s.entityManager, id)
	return ok && behavior.Type == components.BehaviorProjectile
}

// isOffScreen 碰撞盒与屏幕矩形不再相交
func (s *MovementSystem) isOffScreen(id ecs.EntityID, pos *components.PositionComponent) bool {
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
	if !ok {
		return pos.X < 0 || pos.X > s.config.Screen.Width || pos.Y < 0 || pos.Y > s.config.Screen.Height
	}
	left, top, right, bottom := col.Bounds(pos.X, pos.Y)
	return right < 0 || left > s.config.Screen.Width || bottom < 0 || top > s.config.Screen.Height
}
