package entities

import (
	"fmt"

	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/ecs"
)

// NewPlayer 创建玩家飞船实体
// 菜单中的待机飞船和游戏中的玩家飞船使用同一个工厂，位置由调用方决定
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（帧序列与动画速度）
//   - x, y: 飞船中心坐标
//
// 返回:
//   - ecs.EntityID: 创建的飞船实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewPlayer(em *ecs.EntityManager, cfg *config.GameConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}

	id := em.CreateEntity()
	anim := newAnimation(cfg, cfg.Sprites.Player, cfg.Animation.DefaultFrameMs, true)
	attachVisual(em, id, x, y, anim, 0)

	em.AddComponent(id, &components.BehaviorComponent{Type: components.BehaviorPlayer})

	return id, nil
}
