package entities

import (
	"fmt"

	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/ecs"
	"github.com/decker502/arithmetron/pkg/problem"
)

// NewEnemy 创建携带算术题的敌人实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - x, y: 敌人中心坐标（通常 y 位于屏幕上方）
//   - speed: 下落速度（像素/帧），来自当前关卡
//   - p: 敌人携带的题目
//
// 返回:
//   - ecs.EntityID: 创建的敌人实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewEnemy(em *ecs.EntityManager, cfg *config.GameConfig, x, y, speed float64, p problem.Problem) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}

	id := em.CreateEntity()
	anim := newAnimation(cfg, cfg.Sprites.Enemy, cfg.Animation.DefaultFrameMs, true)
	attachVisual(em, id, x, y, anim, 0)

	em.AddComponent(id, &components.VelocityComponent{VX: 0, VY: speed})
	em.AddComponent(id, &components.BehaviorComponent{Type: components.BehaviorEnemy})
	em.AddComponent(id, &components.ProblemComponent{Text: p.Text, Answer: p.Answer})

	return id, nil
}
