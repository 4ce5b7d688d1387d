package systems

import (
	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/ecs"
)

// AnimationSystem 管理所有实体的帧动画
type AnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
	}
}

// Update 更新所有动画实体的帧
//
// 参数:
//   - deltaTime: 自上一帧以来经过的时间（毫秒）
func (s *AnimationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.AnimationComponent](s.entityManager)

	for _, id := range entities {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		if !ok || anim.IsFinished {
			continue
		}

		anim.FrameCounter += deltaTime
		if anim.FrameCounter < anim.FrameSpeed {
			continue
		}
		anim.FrameCounter = 0

		// 没有帧的循环动画停在占位图上
		if len(anim.Frames) == 0 {
			if !anim.IsLooping {
				s.finish(id, anim)
			}
			continue
		}

		next := anim.CurrentFrame + 1
		if next >= len(anim.Frames) {
			if !anim.IsLooping {
				s.finish(id, anim)
				continue
			}
			next = 0
		}
		if next != anim.CurrentFrame {
			anim.CurrentFrame = next
			refreshExtent(s.entityManager, id)
		}
	}
}

// finish 结束单次动画，停在最后一帧
func (s *AnimationSystem) finish(id ecs.EntityID, anim *components.AnimationComponent) {
	anim.IsFinished = true
	if anim.RemoveOnFinish {
		s.entityManager.DestroyEntity(id)
	}
}
