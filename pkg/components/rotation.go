package components

import "math"

// RotationComponent 实体旋转角度（度，逆时针为正）
// 飞船和激光朝向目标时设置
type RotationComponent struct {
	Degrees float64
}

// RotatedExtent 返回 w×h 矩形旋转 degrees 后的轴对齐外接尺寸
func RotatedExtent(w, h, degrees float64) (float64, float64) {
	if degrees == 0 {
		return w, h
	}
	rad := degrees * math.Pi / 180
	sin := math.Abs(math.Sin(rad))
	cos := math.Abs(math.Cos(rad))
	return w*cos + h*sin, w*sin + h*cos
}

// HeadingDegrees 返回从 (fromX, fromY) 指向 (toX, toY) 的朝向角度，范围 (-180, 180]
// 精灵默认朝上，因此减去 90 度；屏幕 Y 轴向下，dy 取反
func HeadingDegrees(fromX, fromY, toX, toY float64) float64 {
	dx := toX - fromX
	dy := toY - fromY
	return NormalizeDegrees(math.Atan2(-dy, dx)*180/math.Pi - 90)
}

// NormalizeDegrees 把角度归一化到 (-180, 180]
func NormalizeDegrees(deg float64) float64 {
	deg = math.Remainder(deg, 360)
	if deg <= -180 {
		deg += 360
	}
	return deg
}
