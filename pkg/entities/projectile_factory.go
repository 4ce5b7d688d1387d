package entities

import (
	"fmt"
	"math"

	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/ecs"
)

// NewProjectile 创建激光实体
// 速度在创建时由指向目标的单位向量一次性确定，之后不再追踪目标
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（激光速度、帧序列）
//   - startX, startY: 发射点（玩家飞船中心）
//   - targetX, targetY: 瞄准点（目标敌人中心）
//   - target: 锁定的敌人实体ID
//
// 返回:
//   - ecs.EntityID: 创建的激光实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewProjectile(em *ecs.EntityManager, cfg *config.GameConfig, startX, startY, targetX, targetY float64, target ecs.EntityID) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}

	dx := targetX - startX
	dy := targetY - startY
	magnitude := math.Hypot(dx, dy)
	if magnitude > 0 {
		dx /= magnitude
		dy /= magnitude
	}

	id := em.CreateEntity()
	anim := newAnimation(cfg, cfg.Sprites.Projectile, cfg.Animation.ProjectileFrameMs, true)
	heading := components.HeadingDegrees(startX, startY, targetX, targetY)
	attachVisual(em, id, startX, startY, anim, heading)

	em.AddComponent(id, &components.VelocityComponent{
		VX: dx * cfg.Projectile.Speed,
		VY: dy * cfg.Projectile.Speed,
	})
	em.AddComponent(id, &components.BehaviorComponent{Type: components.BehaviorProjectile})
	em.AddComponent(id, &components.ProjectileComponent{Target: target})

	return id, nil
}
