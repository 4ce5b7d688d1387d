package components

// TimerComponent 通用计时器
// 生成控制器用它累计距上次生成的时间
type TimerComponent struct {
	Name        string  // 计时器名称，如 "enemy_spawn"
	TargetTime  float64 // 目标时间（毫秒）
	CurrentTime float64 // 当前已过时间（毫秒）
	IsReady     bool    // 计时器是否已到达目标时间
}

// Tick 累加时间并更新 IsReady
func (t *TimerComponent) Tick(deltaMs float64) {
	t.CurrentTime += deltaMs
	t.IsReady = t.CurrentTime >= t.TargetTime
}

// Reset 将计时器归零（不保留溢出部分）
func (t *TimerComponent) Reset() {
	t.CurrentTime = 0
	t.IsReady = false
}
