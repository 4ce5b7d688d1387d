package entities

import (
	"fmt"

	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/ecs"
)

// NewExplosion 创建爆炸效果实体
// 爆炸动画只播放一次，最后一帧显示完后由 AnimationSystem 删除
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - x, y: 爆炸中心（被击毁敌人的最后位置）
//
// 返回:
//   - ecs.EntityID: 创建的爆炸实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewExplosion(em *ecs.EntityManager, cfg *config.GameConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}

	id := em.CreateEntity()
	anim := newAnimation(cfg, cfg.Sprites.Explosion, cfg.Animation.ExplosionFrameMs, false)
	anim.RemoveOnFinish = true
	attachVisual(em, id, x, y, anim, 0)

	em.AddComponent(id, &components.BehaviorComponent{Type: components.BehaviorExplosion})

	return id, nil
}
