package session

import (
	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/ecs"
)

// EntityView 实体的只读视图
type EntityView struct {
	ID       ecs.EntityID
	Kind     components.BehaviorType
	X, Y     float64 // 中心位置
	Width    float64 // 当前帧未旋转的宽度
	Height   float64 // 当前帧未旋转的高度
	Rotation float64 // 角度
	FrameID  string  // 当前帧图像ID，没有帧时为空，绘制占位图
	Problem  string  // 敌人题目文本
}

// HUD 抬头显示信息
type HUD struct {
	Score         int
	Lives         int
	MaxLives      int
	Stage         int // 1-based
	StageCount    int
	Input         string
	CursorVisible bool
	Spawned       int
	Cleared       int
	Quota         int
}

// Overlay 覆盖层信息
type Overlay struct {
	State      State
	FinalScore int
	CanAdvance bool // StageCleared 防抖结束后为 true
}

// Snapshot 一帧的只读快照
type Snapshot struct {
	Entities []EntityView
	HUD      HUD
	Overlay  Overlay
}

// Snapshot 生成当前帧的只读快照
// 已标记删除的实体不会出现在快照中
func (s *Session) Snapshot() Snapshot {
	ids := ecs.GetEntitiesWith2[*components.BehaviorComponent, *components.PositionComponent](s.em)
	views := make([]EntityView, 0, len(ids))
	for _, id := range ids {
		if !s.em.IsAlive(id) {
			continue
		}
		behavior, _ := ecs.GetComponent[*components.BehaviorComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)

		view := EntityView{ID: id, Kind: behavior.Type, X: pos.X, Y: pos.Y}
		if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.em, id); ok {
			view.Width, view.Height = anim.BaseSize()
			if frame, ok := anim.Current(); ok {
				view.FrameID = frame.ID
			}
		}
		if rot, ok := ecs.GetComponent[*components.RotationComponent](s.em, id); ok {
			view.Rotation = rot.Degrees
		}
		if prob, ok := ecs.GetComponent[*components.ProblemComponent](s.em, id); ok {
			view.Problem = prob.Text
		}
		views = append(views, view)
	}

	quota := 0
	if stage, ok := s.stages.Stage(s.stageIndex); ok {
		quota = stage.EnemiesToClear
	}

	return Snapshot{
		Entities: views,
		HUD: HUD{
			Score:         s.score,
			Lives:         s.lives,
			MaxLives:      s.config.Rules.MaxLives,
			Stage:         s.StageNumber(),
			StageCount:    s.stages.Len(),
			Input:         s.input.Text(),
			CursorVisible: s.input.CursorVisible(),
			Spawned:       s.spawner.Spawned(),
			Cleared:       s.cleared,
			Quota:         quota,
		},
		Overlay: Overlay{
			State:      s.state,
			FinalScore: s.score,
			CanAdvance: s.canAdvance(),
		},
	}
}

// RenderTo 将当前快照交给渲染器
func (s *Session) RenderTo(r Renderer) {
	r.Render(s.Snapshot())
}
