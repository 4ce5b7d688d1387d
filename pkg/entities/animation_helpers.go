package entities

import (
	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/ecs"
)

// newAnimation 根据帧配置创建动画组件
func newAnimation(cfg *config.GameConfig, sprite config.SpriteConfig, frameMs float64, looping bool) *components.AnimationComponent {
	frames := make([]components.Frame, 0, len(sprite.Frames))
	for _, f := range sprite.Frames {
		frames = append(frames, components.Frame{ID: f.ID, Width: f.Width, Height: f.Height})
	}
	return &components.AnimationComponent{
		Frames:            frames,
		FrameSpeed:        frameMs,
		IsLooping:         looping,
		PlaceholderWidth:  cfg.Animation.PlaceholderSize,
		PlaceholderHeight: cfg.Animation.PlaceholderSize,
	}
}

// attachVisual 添加位置、动画、旋转和由首帧推导出的碰撞组件
func attachVisual(em *ecs.EntityManager, id ecs.EntityID, x, y float64, anim *components.AnimationComponent, degrees float64) {
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, anim)
	em.AddComponent(id, &components.RotationComponent{Degrees: degrees})

	w, h := anim.BaseSize()
	w, h = components.RotatedExtent(w, h, degrees)
	em.AddComponent(id, &components.CollisionComponent{Width: w, Height: h})
}
