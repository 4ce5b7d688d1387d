package systems

import (
	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/ecs"
)

// refreshExtent 按当前帧尺寸和旋转角度重新推导碰撞盒
func refreshExtent(em *ecs.EntityManager, id ecs.EntityID) {
	anim, ok := ecs.GetComponent[*components.AnimationComponent](em, id)
	if !ok {
		return
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
	if !ok {
		return
	}

	degrees := 0.0
	if rot, ok := ecs.GetComponent[*components.RotationComponent](em, id); ok {
		degrees = rot.Degrees
	}

	w, h := anim.BaseSize()
	col.Width, col.Height = components.RotatedExtent(w, h, degrees)
}

// checkAABBCollision 检查两个中心对齐的碰撞盒是否重叠
func checkAABBCollision(
	pos1 *components.PositionComponent, col1 *components.CollisionComponent,
	pos2 *components.PositionComponent, col2 *components.CollisionComponent) bool {

	left1, top1, right1, bottom1 := col1.Bounds(pos1.X, pos1.Y)
	left2, top2, right2, bottom2 := col2.Bounds(pos2.X, pos2.Y)

	// 任一轴上没有重叠则没有碰撞
	return right1 >= left2 &&
		left1 <= right2 &&
		bottom1 >= top2 &&
		top1 <= bottom2
}
