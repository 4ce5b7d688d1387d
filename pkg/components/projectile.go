package components

import "github.com/decker502/arithmetron/pkg/ecs"

// ProjectileComponent 激光发射时瞄准的敌人
// 仅用于日志；命中判定对所有敌人生效
type ProjectileComponent struct {
	Target ecs.EntityID
}
