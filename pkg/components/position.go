package components

// PositionComponent 实体中心的世界坐标（像素）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体速度（像素/帧）
// MovementSystem 按 dt 与标准帧时长的比例换算位移
type VelocityComponent struct {
	VX float64
	VY float64
}
