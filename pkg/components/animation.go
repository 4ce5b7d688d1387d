package components

// Frame 动画帧：图像资源ID与基础尺寸
// 渲染层通过 ID 查找图像，找不到时使用占位图
type Frame struct {
	ID     string
	Width  float64
	Height float64
}

// AnimationComponent 管理逐帧动画
// 它存储了动画的所有帧、播放速度以及当前状态
type AnimationComponent struct {
	Frames       []Frame // 动画的所有帧
	FrameSpeed   float64 // 每帧之间的延迟时间(毫秒)
	FrameCounter float64 // 当前帧计时器(毫秒)
	CurrentFrame int     // 当前显示的帧索引(0-based)，始终是 Frames 的有效下标
	IsLooping    bool    // 是否循环播放
	IsFinished   bool    // 动画是否已完成(仅对非循环动画有效)

	// RemoveOnFinish 非循环动画完成后删除实体（爆炸）
	RemoveOnFinish bool

	// 没有任何帧时使用的占位尺寸
	PlaceholderWidth  float64
	PlaceholderHeight float64
}

// Current 返回当前帧
// 没有帧时返回 false，调用方应绘制占位图
func (a *AnimationComponent) Current() (Frame, bool) {
	if len(a.Frames) == 0 {
		return Frame{}, false
	}
	return a.Frames[a.CurrentFrame], true
}

// BaseSize 返回当前帧（或占位图）的未旋转尺寸
func (a *AnimationComponent) BaseSize() (float64, float64) {
	if frame, ok := a.Current(); ok {
		return frame.Width, frame.Height
	}
	return a.PlaceholderWidth, a.PlaceholderHeight
}
