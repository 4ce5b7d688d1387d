package components

// CollisionComponent 定义实体的碰撞检测边界框
// 边界框以实体位置为中心；尺寸由 AnimationSystem 按当前帧和旋转角度重新推导
type CollisionComponent struct {
	Width  float64 // 碰撞盒宽度（像素）
	Height float64 // 碰撞盒高度（像素）
}

// Bounds 返回以 (x, y) 为中心的边界框 (left, top, right, bottom)
func (c *CollisionComponent) Bounds(x, y float64) (float64, float64, float64, float64) {
	return x - c.Width/2, y - c.Height/2, x + c.Width/2, y + c.Height/2
}
